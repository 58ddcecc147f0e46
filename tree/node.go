package tree

import (
	"fmt"

	"github.com/pbanos/sapling/feature"
)

/*
State is the resolution state of a node. Nodes are created Unresolved and
become either Internal or Leaf exactly once, when they are branched out.
*/
type State int

const (
	// Unresolved nodes have not been branched out yet
	Unresolved State = iota
	// Internal nodes route points to one of their two children
	Internal
	// Leaf nodes hold a decision
	Leaf
)

var stateNames = [...]string{"unresolved", "internal", "leaf"}

func (s State) String() string {
	if s < Unresolved || s > Leaf {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState takes the name of a state and returns the State or an error
func ParseState(name string) (State, error) {
	for i, sn := range stateNames {
		if sn == name {
			return State(i), nil
		}
	}
	return Unresolved, fmt.Errorf("unknown node state %q", name)
}

/*
Node is a node of the tree
*/
type Node struct {
	// An ID to identify the node
	ID string
	// The ID for the parent of the node in the tree, empty for the root
	ParentID string
	// The depth of the node, 0 for the root
	Height int
	// Whether the node is unresolved, internal or a leaf
	State State
	// For internal nodes, the index of the feature the rule applies to
	FeatureIndex int
	// For internal nodes, the rule that routes points to the left or right child
	Rule feature.Rule
	// For internal nodes, the IDs of the children
	LeftID  string
	RightID string
	// The label counts of the training points that reached the node.
	// For leaves, its decision is the one returned for points reaching them.
	Prediction *Prediction
}

/*
SplitRule returns the feature index and rule of an internal node, or
ErrNotInternal for unresolved and leaf nodes.
*/
func (n *Node) SplitRule() (int, feature.Rule, error) {
	if n.State != Internal {
		return 0, feature.Rule{}, ErrNotInternal
	}
	return n.FeatureIndex, n.Rule, nil
}

/*
Next takes a feature vector and returns the ID of the child of an internal
node the vector is routed to.
*/
func (n *Node) Next(x []float64) (string, error) {
	fi, r, err := n.SplitRule()
	if err != nil {
		return "", err
	}
	if fi < 0 || fi >= len(x) {
		return "", ErrFeatureVectorLength
	}
	if r.Left(x[fi]) {
		return n.LeftID, nil
	}
	return n.RightID, nil
}

func (n *Node) String() string {
	switch n.State {
	case Internal:
		return fmt.Sprintf("{Node %s x%d %v -> %s | %s}", n.ID, n.FeatureIndex, n.Rule, n.LeftID, n.RightID)
	case Leaf:
		return fmt.Sprintf("{Node %s leaf %v}", n.ID, n.Prediction)
	}
	return fmt.Sprintf("{Node %s unresolved}", n.ID)
}
