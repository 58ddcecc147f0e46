package json

import (
	"testing"

	"github.com/pbanos/sapling/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFeatures() []feature.Feature {
	return []feature.Feature{
		feature.NewBooleanFeature("smoker"),
		feature.NewCategoricalFeature("class", []string{"first", "second"}),
		feature.NewContinuousFeature("age"),
	}
}

func TestRuleEncodeDecoder(t *testing.T) {
	red := NewRuleEncodeDecoder(testFeatures())
	cases := []struct {
		index int
		rule  feature.Rule
	}{
		{0, feature.NewBooleanRule()},
		{1, feature.NewCategoricalRule(1)},
		{2, feature.NewContinuousRule(33.333333333333336)},
	}
	for _, c := range cases {
		b, err := red.Encode(c.index, c.rule)
		require.NoError(t, err)
		i, r, err := red.Decode(b)
		require.NoError(t, err)
		assert.Equal(t, c.index, i)
		assert.Equal(t, c.rule, r)
	}
}

func TestRuleEncodeDecoderRejectsMismatches(t *testing.T) {
	red := NewRuleEncodeDecoder(testFeatures())
	_, err := red.Encode(0, feature.NewContinuousRule(1))
	assert.Error(t, err)
	_, err = red.Encode(5, feature.NewBooleanRule())
	assert.Error(t, err)
	_, _, err = red.Decode([]byte(`{"t":"continuous","f":"smoker","v":"1"}`))
	assert.Error(t, err)
	_, _, err = red.Decode([]byte(`{"t":"boolean","f":"height"}`))
	assert.Error(t, err)
}

func TestFeatures(t *testing.T) {
	b, err := MarshalFeatures(testFeatures())
	require.NoError(t, err)
	fs, err := UnmarshalFeatures(b)
	require.NoError(t, err)
	require.Len(t, fs, 3)
	assert.Equal(t, []feature.Type{feature.Boolean, feature.Categorical, feature.Continuous}, feature.Types(fs))
	assert.Equal(t, []string{"first", "second"}, fs[1].(*feature.CategoricalFeature).AvailableValues())
}
