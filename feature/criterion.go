package feature

import (
	"fmt"
	"strconv"
)

/*
Rule is the test a tree node applies to one feature of a point to route it
to one of its two children. It is a tagged union on the feature type:
  - Boolean rules carry no payload: points with value 0 go left.
  - Categorical rules carry a category: points with that value go left.
  - Continuous rules carry a threshold: points with a lower value go left.
Points that do not go left go right.
*/
type Rule struct {
	Type  Type
	Value float64
}

// NewBooleanRule returns the rule for boolean features.
func NewBooleanRule() Rule {
	return Rule{Type: Boolean}
}

// NewCategoricalRule returns a rule sending points with category k to the left.
func NewCategoricalRule(k float64) Rule {
	return Rule{Type: Categorical, Value: k}
}

// NewContinuousRule returns a rule sending points below threshold to the left.
func NewContinuousRule(threshold float64) Rule {
	return Rule{Type: Continuous, Value: threshold}
}

/*
Left takes a feature value and returns whether a point with that value must be
routed to the left child (side 0).
*/
func (r Rule) Left(v float64) bool {
	switch r.Type {
	case Boolean:
		return v == 0
	case Categorical:
		return v == r.Value
	default:
		return v < r.Value
	}
}

// Threshold returns the threshold of a continuous rule.
func (r Rule) Threshold() (float64, bool) {
	return r.Value, r.Type == Continuous
}

// Category returns the category of a categorical rule.
func (r Rule) Category() (float64, bool) {
	return r.Value, r.Type == Categorical
}

/*
Describe takes the feature the rule applies to and returns a human readable
description of the condition for the left side.
*/
func (r Rule) Describe(f Feature) string {
	switch r.Type {
	case Boolean:
		return fmt.Sprintf("%s is false", f.Name())
	case Categorical:
		return fmt.Sprintf("%s is %s", f.Name(), f.Format(r.Value))
	default:
		return fmt.Sprintf("%s < %s", f.Name(), strconv.FormatFloat(r.Value, 'g', 6, 64))
	}
}

func (r Rule) String() string {
	switch r.Type {
	case Boolean:
		return "== 0"
	case Categorical:
		return fmt.Sprintf("== %v", r.Value)
	default:
		return fmt.Sprintf("< %v", r.Value)
	}
}
