package yaml

import (
	"testing"

	"github.com/pbanos/sapling/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFeaturesKeepsOrder(t *testing.T) {
	md := []byte(`
label: survived
features:
  age: continuous
  smoker: boolean
  class: [first, second, third]
  zone: categorical
`)
	metadata, err := ReadFeatures(md)
	require.NoError(t, err)
	assert.Equal(t, "survived", metadata.Label)
	require.Len(t, metadata.Features, 4)
	names := []string{}
	for _, f := range metadata.Features {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"age", "smoker", "class", "zone"}, names)
	assert.Equal(t, []feature.Type{feature.Continuous, feature.Boolean, feature.Categorical, feature.Categorical}, feature.Types(metadata.Features))
	cf, ok := metadata.Features[2].(*feature.CategoricalFeature)
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second", "third"}, cf.AvailableValues())
}

func TestReadFeaturesErrors(t *testing.T) {
	for name, md := range map[string]string{
		"no features":   "label: x\n",
		"unknown type":  "features:\n  a: ordinal\n",
		"label feature": "label: a\nfeatures:\n  a: boolean\n",
		"bad value":     "features:\n  a: 3\n",
	} {
		_, err := ReadFeatures([]byte(md))
		assert.Error(t, err, name)
	}
}
