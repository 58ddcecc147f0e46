package sapling

import (
	"context"

	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
)

/*
Train takes the rows of feature values of a set of training points, their
labels, the type of each feature, a maximum height and a minimum split size,
and returns a fully resolved tree grown on a memory node store by a single
worker. Features are named x0, x1 and so on, and the label is named y.

An error is returned for inconsistent lengths, a negative maximum height or a
minimum split size below 1.
*/
func Train(ctx context.Context, rows [][]float64, labels []bool, types []feature.Type, maxHeight, minSplitSize int) (*tree.Tree, error) {
	features, err := feature.Anonymous(types)
	if err != nil {
		return nil, err
	}
	gp := &GrowthPolicy{MaxHeight: maxHeight, MinSplitSize: minSplitSize}
	return Grow(ctx, "y", features, rows, labels, gp, nil)
}

/*
Predict takes a tree and a feature vector with a value for each of its
features, and returns the label the tree predicts for the vector.
*/
func Predict(ctx context.Context, t *tree.Tree, x []float64) (bool, error) {
	return t.Predict(ctx, x)
}
