package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/sapling/evaluation"
	"github.com/pbanos/sapling/feature"
)

// Tree represents a binary decision tree. It is composed of a
// NodeStore where all its nodes are stored, the id for the
// root node of the tree, the name of the label it predicts
// and the features of the vectors it predicts from.
type Tree struct {
	NodeStore
	RootID   string
	Label    string
	Features []feature.Feature
}

// New takes the ID for the root Node, a NodeStore, a label name and the
// features and returns a tree composed of the nodes in the NodeStore
// connected to the node with the given root ID.
func New(rootID string, nodeStore NodeStore, label string, features []feature.Feature) *Tree {
	return &Tree{nodeStore, rootID, label, features}
}

// Types returns the types of the tree's features
func (t *Tree) Types() []feature.Type {
	return feature.Types(t.Features)
}

/*
Leaf takes a feature vector and returns the leaf it reaches starting from the
root, following at each internal node the child its rule routes the vector
to. A categorical value never seen on training is simply not equal to any
node's category and goes right.
*/
func (t *Tree) Leaf(ctx context.Context, x []float64) (*Node, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tree cannot predict")
	}
	if len(x) != len(t.Features) {
		return nil, ErrFeatureVectorLength
	}
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return nil, err
	}
	for {
		switch n.State {
		case Leaf:
			return n, nil
		case Internal:
			id, err := n.Next(x)
			if err != nil {
				return nil, err
			}
			n, err = t.node(ctx, id)
			if err != nil {
				return nil, err
			}
		default:
			return nil, ErrUnresolvedNode
		}
	}
}

// Predict takes a feature vector and returns the decision of the leaf it
// reaches, or an error if the prediction could not be made.
func (t *Tree) Predict(ctx context.Context, x []float64) (bool, error) {
	n, err := t.Leaf(ctx, x)
	if err != nil {
		return false, err
	}
	if n.Prediction == nil {
		return false, ErrUnresolvedNode
	}
	return n.Prediction.Decision(), nil
}

func (t *Tree) node(ctx context.Context, id string) (*Node, error) {
	n, err := t.NodeStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("retrieving node %v: %v", id, err)
	}
	if n == nil {
		return nil, fmt.Errorf("retrieving node %v: %w", id, ErrNodeNotFound)
	}
	return n, nil
}

/*
Test takes a context.Context, rows of feature vectors and their labels and
returns the report of evaluating the tree's predictions for the rows against
the labels, or an error if any prediction cannot be made.
*/
func (t *Tree) Test(ctx context.Context, rows [][]float64, labels []bool) (*evaluation.Report, error) {
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("testing tree: %d rows but %d labels", len(rows), len(labels))
	}
	predicted := make([]bool, len(rows))
	for i, x := range rows {
		p, err := t.Predict(ctx, x)
		if err != nil {
			return nil, fmt.Errorf("testing tree: row %d: %v", i, err)
		}
		predicted[i] = p
	}
	return evaluation.NewReport(labels, predicted), nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// Left children are always traversed before right children.
// If the given context times out or is cancelled, the context
// error is returned. If a node cannot be retrieved from the
// tree's node store, the obtained error is returned. If the
// call to the function returns an error, the traversing is
// aborted and the error is returned. Otherwise, when the
// traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return err
	}
	return t.traverse(ctx, n, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, n)
	}
	if err != nil {
		return err
	}
	if n.State == Internal {
		for _, snID := range []string{n.LeftID, n.RightID} {
			sn, err := t.node(ctx, snID)
			if err != nil {
				return err
			}
			err = t.traverse(ctx, sn, bottomup, f)
			if err != nil {
				return err
			}
		}
	}
	if bottomup {
		err = f(ctx, n)
	}
	return err
}

/*
Height returns the height of the deepest node of the tree, 0 for a tree with
only a root.
*/
func (t *Tree) Height(ctx context.Context) (int, error) {
	var h int
	err := t.Traverse(ctx, false, func(ctx context.Context, n *Node) error {
		if n.Height > h {
			h = n.Height
		}
		return nil
	})
	return h, err
}

// Describe returns a human readable description of an internal node's rule
func (t *Tree) Describe(n *Node) string {
	fi, r, err := n.SplitRule()
	if err != nil {
		return n.State.String()
	}
	if fi >= 0 && fi < len(t.Features) {
		return r.Describe(t.Features[fi])
	}
	return fmt.Sprintf("x%d %v", fi, r)
}

func (t *Tree) String() string {
	return t.subtreeString(t.RootID)
}

func (t *Tree) subtreeString(nodeID string) string {
	n, err := t.node(context.TODO(), nodeID)
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	result := fmt.Sprintf("[%s]\n", nodeID)
	if n.State == Internal {
		result = fmt.Sprintf("%s{ %s }\n", result, t.Describe(n))
	}
	if n.Prediction != nil {
		result = fmt.Sprintf("%s{ %s: %v }\n", result, t.Label, n.Prediction)
	}
	var subtreeIDs []string
	if n.State == Internal {
		subtreeIDs = []string{n.LeftID, n.RightID}
		result = fmt.Sprintf("%s|\n", result)
	} else {
		result = fmt.Sprintf("%s \n", result)
	}
	for i, subtreeID := range subtreeIDs {
		for j, line := range strings.Split(t.subtreeString(subtreeID), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(subtreeIDs)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
