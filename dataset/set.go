/*
Package dataset holds the point sets a tree is grown from and the search for
the split of a point set that maximizes Gini impurity gain.
*/
package dataset

import (
	"github.com/pbanos/sapling/feature"
	"gonum.org/v1/gonum/mat"
)

// Error represents an error related with point sets
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrEmptySet is returned when building a point set without points
	ErrEmptySet = Error("point set must contain at least one point")
	// ErrNoFeatures is returned when building a point set without feature columns
	ErrNoFeatures = Error("point set must have at least one feature")
	// ErrLabelCount is returned when the number of labels and rows differ
	ErrLabelCount = Error("number of labels does not match number of rows")
	// ErrRowLength is returned when a row does not have one value per feature type
	ErrRowLength = Error("row length does not match number of feature types")
	// ErrMinSplitSize is returned for a minimum split size lower than 1
	ErrMinSplitSize = Error("minimum split size must be at least 1")
	// ErrSplitNotSearched is returned when asking for the split rule of a
	// point set before searching for its best split
	ErrSplitNotSearched = Error("split rule requested before searching for the best split")
	// ErrNoUsableSplit is returned when asking for the split rule of a
	// point set whose search found no split with positive gain
	ErrNoUsableSplit = Error("no usable split for the point set")
	// ErrEmptyPartition is returned when a partition would leave a side empty
	ErrEmptyPartition = Error("partition leaves one side without points")
	// ErrFeatureIndex is returned when a feature index is out of range
	ErrFeatureIndex = Error("feature index out of range")
)

/*
PointSet is a set of N points, each with a feature vector of F values and a
boolean label. The types slice is shared by every point set partitioned from
the same root and must not be modified.

Apart from memoizing the results of its queries, a PointSet is immutable. It
is not safe for concurrent use.
*/
type PointSet struct {
	features     *mat.Dense
	labels       []bool
	types        []feature.Type
	minSplitSize int
	gini         *float64
	best         *Split
}

/*
New takes the rows of feature values, the label of each row, the type of each
feature column and the minimum number of points a side of a split must hold,
and returns a PointSet or an error if the arguments are inconsistent.
*/
func New(rows [][]float64, labels []bool, types []feature.Type, minSplitSize int) (*PointSet, error) {
	if err := checkShape(len(rows), len(labels), len(types), minSplitSize); err != nil {
		return nil, err
	}
	data := make([]float64, 0, len(rows)*len(types))
	for _, row := range rows {
		if len(row) != len(types) {
			return nil, ErrRowLength
		}
		data = append(data, row...)
	}
	return &PointSet{
		features:     mat.NewDense(len(rows), len(types), data),
		labels:       append([]bool(nil), labels...),
		types:        types,
		minSplitSize: minSplitSize,
	}, nil
}

/*
NewFromDense is like New but takes the feature values as a matrix with a row
per point, which the point set takes ownership of.
*/
func NewFromDense(features *mat.Dense, labels []bool, types []feature.Type, minSplitSize int) (*PointSet, error) {
	var r, c int
	if features != nil {
		r, c = features.Dims()
	}
	if err := checkShape(r, len(labels), len(types), minSplitSize); err != nil {
		return nil, err
	}
	if c != len(types) {
		return nil, ErrRowLength
	}
	return &PointSet{
		features:     features,
		labels:       append([]bool(nil), labels...),
		types:        types,
		minSplitSize: minSplitSize,
	}, nil
}

func checkShape(rows, labels, types, minSplitSize int) error {
	if minSplitSize < 1 {
		return ErrMinSplitSize
	}
	if rows == 0 {
		return ErrEmptySet
	}
	if types == 0 {
		return ErrNoFeatures
	}
	if rows != labels {
		return ErrLabelCount
	}
	return nil
}

// Count returns the number of points in the set
func (ps *PointSet) Count() int {
	return len(ps.labels)
}

// Labels returns the labels of the points in the set
func (ps *PointSet) Labels() []bool {
	return ps.labels
}

// Row returns a copy of the feature vector of the i-th point
func (ps *PointSet) Row(i int) []float64 {
	return mat.Row(nil, i, ps.features)
}

// Value returns the value of the j-th feature of the i-th point
func (ps *PointSet) Value(i, j int) float64 {
	return ps.features.At(i, j)
}

// Types returns the shared slice of feature types
func (ps *PointSet) Types() []feature.Type {
	return ps.types
}

// MinSplitSize returns the minimum number of points on each side of a split
func (ps *PointSet) MinSplitSize() int {
	return ps.minSplitSize
}

/*
CountLabels returns the number of points labeled false and the number of
points labeled true.
*/
func (ps *PointSet) CountLabels() (negatives, positives int) {
	for _, l := range ps.labels {
		if l {
			positives++
		} else {
			negatives++
		}
	}
	return
}

/*
Gini returns the Gini impurity of the set: 1 - (n0/N)^2 - (n1/N)^2 where n0
and n1 are the number of points labeled false and true.
*/
func (ps *PointSet) Gini() float64 {
	if ps.gini == nil {
		g := gini(ps.CountLabels())
		ps.gini = &g
	}
	return *ps.gini
}

func gini(n0, n1 int) float64 {
	n := float64(n0 + n1)
	if n == 0 {
		return 0
	}
	p0 := float64(n0) / n
	p1 := float64(n1) / n
	return 1 - p0*p0 - p1*p1
}

/*
Partition takes a feature index and a rule on that feature and returns the
point sets with the points the rule routes to the left and to the right. Both
share the types and minimum split size of ps. ErrEmptyPartition is returned if
either side would have no points.
*/
func (ps *PointSet) Partition(featureIndex int, r feature.Rule) (left, right *PointSet, err error) {
	if featureIndex < 0 || featureIndex >= len(ps.types) {
		return nil, nil, ErrFeatureIndex
	}
	n, f := ps.features.Dims()
	var leftRows, rightRows []int
	for i := 0; i < n; i++ {
		if r.Left(ps.features.At(i, featureIndex)) {
			leftRows = append(leftRows, i)
		} else {
			rightRows = append(rightRows, i)
		}
	}
	if len(leftRows) == 0 || len(rightRows) == 0 {
		return nil, nil, ErrEmptyPartition
	}
	return ps.subset(leftRows, f), ps.subset(rightRows, f), nil
}

func (ps *PointSet) subset(rows []int, f int) *PointSet {
	features := mat.NewDense(len(rows), f, nil)
	labels := make([]bool, len(rows))
	for k, i := range rows {
		features.SetRow(k, ps.features.RawRowView(i))
		labels[k] = ps.labels[i]
	}
	return &PointSet{
		features:     features,
		labels:       labels,
		types:        ps.types,
		minSplitSize: ps.minSplitSize,
	}
}
