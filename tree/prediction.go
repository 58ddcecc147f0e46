package tree

import (
	"fmt"

	"github.com/pbanos/sapling/dataset"
)

/*
Prediction represents the label counts of the training points that reached a
node, from which the node's majority decision is derived.
*/
type Prediction struct {
	negatives int
	positives int
}

// Error represents an error related with trees and their nodes
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotInternal is returned when asking for the split rule of a node that is not internal
	ErrNotInternal = Error("node has no split rule: it is not an internal node")
	// ErrFeatureVectorLength is returned when predicting with a feature vector of the wrong length
	ErrFeatureVectorLength = Error("feature vector length does not match the tree features")
	// ErrUnresolvedNode is returned when a prediction reaches a node that has not been resolved
	ErrUnresolvedNode = Error("prediction reached an unresolved node")
	// ErrNodeNotFound is returned when a node referenced by the tree is missing from its store
	ErrNodeNotFound = Error("node not found")
)

/*
NewPrediction takes the number of points labeled false and labeled true and
returns a prediction for those counts.
*/
func NewPrediction(negatives, positives int) *Prediction {
	return &Prediction{negatives, positives}
}

// NewPredictionFromSet returns the prediction for the labels of a point set
func NewPredictionFromSet(ps *dataset.PointSet) *Prediction {
	return NewPrediction(ps.CountLabels())
}

/*
Decision returns the majority label. Ties go to true.
*/
func (p *Prediction) Decision() bool {
	return p.positives >= p.negatives
}

// Negatives returns the number of points labeled false
func (p *Prediction) Negatives() int {
	return p.negatives
}

// Positives returns the number of points labeled true
func (p *Prediction) Positives() int {
	return p.positives
}

/*
Weight returns the weight of the prediction: the number of points it was
made from
*/
func (p *Prediction) Weight() int {
	return p.negatives + p.positives
}

/*
Probability returns the share of points labeled true, or 0 for a prediction
without points.
*/
func (p *Prediction) Probability() float64 {
	if p.Weight() == 0 {
		return 0
	}
	return float64(p.positives) / float64(p.Weight())
}

func (p *Prediction) String() string {
	return fmt.Sprintf("%t (%d/%d)", p.Decision(), p.positives, p.Weight())
}
