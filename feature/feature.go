/*
Package feature defines the columns of the point sets a tree learns from:
their type, how raw values are parsed into the float64 cells of a feature
vector and the rules used to route points on a feature.
*/
package feature

import (
	"fmt"
	"strconv"
)

/*
Type is the kind of a feature column. It is fixed for a whole training run.
*/
type Type int

const (
	// Boolean features take the value 0 or any other value.
	Boolean Type = iota
	// Categorical features take values that are only compared by equality.
	Categorical
	// Continuous features take real values that are compared against thresholds.
	Continuous
)

var typeNames = [...]string{"boolean", "categorical", "continuous"}

func (t Type) String() string {
	if t < Boolean || t > Continuous {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

/*
ParseType takes the name of a feature type and returns the Type or an error
if the name is not one of "boolean", "categorical" or "continuous".
*/
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown feature type %q", s)
}

// MarshalText encodes the type as its name.
func (t Type) MarshalText() ([]byte, error) {
	if t < Boolean || t > Continuous {
		return nil, fmt.Errorf("cannot marshal unknown feature type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type from its name.
func (t *Type) UnmarshalText(b []byte) error {
	pt, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = pt
	return nil
}

/*
Feature represents a column of the feature vectors of a set of points.

Its Parse method converts a raw textual value into the float64 stored in
feature vectors, and its Format method does the opposite.
*/
type Feature interface {
	Name() string
	Type() Type
	Parse(string) (float64, error)
	Format(float64) string
}

/*
BooleanFeature is a feature whose values are either 0 (false) or anything
else (true).
*/
type BooleanFeature struct {
	name string
}

/*
CategoricalFeature is a feature whose values are categories. When it has
available values, each category is encoded as its index among them.
Otherwise categories are expected to be numeric codes already.
*/
type CategoricalFeature struct {
	name            string
	availableValues []string
	codes           map[string]float64
}

/*
ContinuousFeature is a feature that takes real values.
*/
type ContinuousFeature struct {
	name string
}

// NewBooleanFeature returns a boolean feature with the given name.
func NewBooleanFeature(name string) *BooleanFeature {
	return &BooleanFeature{name}
}

/*
NewCategoricalFeature takes a name string and a slice of available value strings
and returns a categorical feature with the given name and available values.
A nil or empty slice of values makes the feature accept numeric codes.
*/
func NewCategoricalFeature(name string, availableValues []string) *CategoricalFeature {
	codes := make(map[string]float64, len(availableValues))
	for i, v := range availableValues {
		codes[v] = float64(i)
	}
	return &CategoricalFeature{name, availableValues, codes}
}

// NewContinuousFeature returns a continuous feature with the given name.
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

/*
New takes a name and a Type and returns a feature of that type. Categorical
features built this way accept numeric codes.
*/
func New(name string, t Type) (Feature, error) {
	switch t {
	case Boolean:
		return NewBooleanFeature(name), nil
	case Categorical:
		return NewCategoricalFeature(name, nil), nil
	case Continuous:
		return NewContinuousFeature(name), nil
	}
	return nil, fmt.Errorf("feature %s: unknown feature type %d", name, int(t))
}

/*
Types takes a slice of features and returns the slice with their types, in the
same order.
*/
func Types(features []Feature) []Type {
	types := make([]Type, len(features))
	for i, f := range features {
		types[i] = f.Type()
	}
	return types
}

/*
Anonymous takes a slice of types and returns features of those types named
x0, x1 and so on.
*/
func Anonymous(types []Type) ([]Feature, error) {
	features := make([]Feature, len(types))
	for i, t := range types {
		f, err := New(fmt.Sprintf("x%d", i), t)
		if err != nil {
			return nil, err
		}
		features[i] = f
	}
	return features, nil
}

func (bf *BooleanFeature) Name() string {
	return bf.name
}

func (bf *BooleanFeature) Type() Type {
	return Boolean
}

/*
Parse accepts the values understood by strconv.ParseBool as well as any
number, which is kept as is.
*/
func (bf *BooleanFeature) Parse(s string) (float64, error) {
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("boolean feature %s got invalid value %q", bf.name, s)
	}
	return v, nil
}

func (bf *BooleanFeature) Format(v float64) string {
	return strconv.FormatBool(v != 0)
}

func (bf *BooleanFeature) String() string {
	return bf.name
}

func (cf *CategoricalFeature) Name() string {
	return cf.name
}

func (cf *CategoricalFeature) Type() Type {
	return Categorical
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (cf *CategoricalFeature) AvailableValues() []string {
	return cf.availableValues
}

/*
Parse returns the code for the given category. With available values, an
unknown category is an error.
*/
func (cf *CategoricalFeature) Parse(s string) (float64, error) {
	if len(cf.availableValues) == 0 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("categorical feature %s expects numeric codes, got %q", cf.name, s)
		}
		return v, nil
	}
	code, ok := cf.codes[s]
	if !ok {
		return 0, fmt.Errorf("categorical feature %s got unknown value %q", cf.name, s)
	}
	return code, nil
}

func (cf *CategoricalFeature) Format(v float64) string {
	i := int(v)
	if float64(i) == v && i >= 0 && i < len(cf.availableValues) {
		return cf.availableValues[i]
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (cf *CategoricalFeature) String() string {
	return cf.name
}

func (cf *ContinuousFeature) Name() string {
	return cf.name
}

func (cf *ContinuousFeature) Type() Type {
	return Continuous
}

func (cf *ContinuousFeature) Parse(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("continuous feature %s expects a real number, got %q", cf.name, s)
	}
	return v, nil
}

func (cf *ContinuousFeature) Format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}
