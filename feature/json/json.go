package json

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pbanos/sapling/feature"
)

/*
RuleEncodeDecoder is an interface for objects
that allow encoding split rules into slices of
bytes and decoding them back to rules.
*/
type RuleEncodeDecoder interface {

	//Encode receives the index of the feature a rule
	//applies to and the rule, and returns a slice of
	//bytes with the rule encoded or an error if the
	//encoding could not be performed for some reason.
	Encode(int, feature.Rule) ([]byte, error)

	//Decode receives a slice of bytes and returns
	//the index of the feature and the feature.Rule
	//decoded from the slice of bytes or an error if
	//the decoding could not be performed for some reason.
	Decode([]byte) (int, feature.Rule, error)
}

type jsonRuleEncodeDecoder []feature.Feature

type jsonRule struct {
	Type    string `json:"t"`
	Feature string `json:"f"`
	Value   string `json:"v,omitempty"`
}

type jsonFeature struct {
	Name   string       `json:"name"`
	Type   feature.Type `json:"type"`
	Values []string     `json:"values,omitempty"`
}

// NewRuleEncodeDecoder takes a slice of feature.Feature and returns a
// RuleEncodeDecoder that marshals and unmarshals
// rules into/from slices of bytes as JSON.
// Specifically, rules are encoded as a JSON object
// with an "f" property set to the name of the feature
// the rule applies to and a "t" property that can be one of
// "boolean", "categorical" or "continuous":
//   - If the rule is categorical it will have a "v" property
//     with the category sending points to the left
//   - If the rule is continuous it will have a "v" property
//     with the threshold below which points go to the left
//   - If the rule is boolean it will have no additional
//     properties
func NewRuleEncodeDecoder(features []feature.Feature) RuleEncodeDecoder {
	return jsonRuleEncodeDecoder(features)
}

func (jred jsonRuleEncodeDecoder) Encode(featureIndex int, r feature.Rule) ([]byte, error) {
	if featureIndex < 0 || featureIndex >= len(jred) {
		return nil, fmt.Errorf("encoding rule: feature index %d out of range [0, %d)", featureIndex, len(jred))
	}
	f := jred[featureIndex]
	if f.Type() != r.Type {
		return nil, fmt.Errorf("encoding rule: %v rule on %v feature %s", r.Type, f.Type(), f.Name())
	}
	jr := &jsonRule{Type: r.Type.String(), Feature: f.Name()}
	if r.Type != feature.Boolean {
		jr.Value = strconv.FormatFloat(r.Value, 'g', -1, 64)
	}
	return json.Marshal(jr)
}

func (jred jsonRuleEncodeDecoder) Decode(data []byte) (int, feature.Rule, error) {
	jr := &jsonRule{}
	err := json.Unmarshal(data, jr)
	if err != nil {
		return 0, feature.Rule{}, err
	}
	featureIndex := -1
	for i, f := range jred {
		if f.Name() == jr.Feature {
			featureIndex = i
			break
		}
	}
	if featureIndex < 0 {
		return 0, feature.Rule{}, fmt.Errorf("unknown feature '%s'", jr.Feature)
	}
	t, err := feature.ParseType(jr.Type)
	if err != nil {
		return 0, feature.Rule{}, err
	}
	if f := jred[featureIndex]; f.Type() != t {
		return 0, feature.Rule{}, fmt.Errorf("expected %v feature for %v rule but found %v feature %s", t, t, f.Type(), f.Name())
	}
	switch t {
	case feature.Boolean:
		return featureIndex, feature.NewBooleanRule(), nil
	case feature.Categorical:
		v, err := strconv.ParseFloat(jr.Value, 64)
		if err != nil {
			return 0, feature.Rule{}, fmt.Errorf("parsing category of rule on %s: %v", jr.Feature, err)
		}
		return featureIndex, feature.NewCategoricalRule(v), nil
	default:
		v, err := strconv.ParseFloat(jr.Value, 64)
		if err != nil {
			return 0, feature.Rule{}, fmt.Errorf("parsing threshold of rule on %s: %v", jr.Feature, err)
		}
		return featureIndex, feature.NewContinuousRule(v), nil
	}
}

/*
MarshalFeatures takes a slice of features and returns them serialized as a JSON
array of objects with "name", "type" and, for categorical features with
available values, "values" properties.
*/
func MarshalFeatures(features []feature.Feature) ([]byte, error) {
	jfs := make([]*jsonFeature, 0, len(features))
	for _, f := range features {
		jf := &jsonFeature{Name: f.Name(), Type: f.Type()}
		if cf, ok := f.(*feature.CategoricalFeature); ok {
			jf.Values = cf.AvailableValues()
		}
		jfs = append(jfs, jf)
	}
	return json.Marshal(jfs)
}

/*
UnmarshalFeatures takes a slice of bytes with features serialized by
MarshalFeatures and returns the features or an error.
*/
func UnmarshalFeatures(b []byte) ([]feature.Feature, error) {
	var jfs []*jsonFeature
	err := json.Unmarshal(b, &jfs)
	if err != nil {
		return nil, err
	}
	features := make([]feature.Feature, 0, len(jfs))
	for _, jf := range jfs {
		if jf.Type == feature.Categorical {
			features = append(features, feature.NewCategoricalFeature(jf.Name, jf.Values))
			continue
		}
		f, err := feature.New(jf.Name, jf.Type)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}
