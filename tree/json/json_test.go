package json

import (
	"bytes"
	"context"
	"testing"

	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(t *testing.T) *tree.Tree {
	ctx := context.Background()
	ns := tree.NewMemoryNodeStore()
	features := []feature.Feature{
		feature.NewCategoricalFeature("class", []string{"first", "second", "third"}),
		feature.NewContinuousFeature("fare"),
	}
	root := &tree.Node{}
	left := &tree.Node{Height: 1}
	right := &tree.Node{Height: 1}
	for _, n := range []*tree.Node{root, left, right} {
		require.NoError(t, ns.Create(ctx, n))
	}
	left.ParentID, right.ParentID = root.ID, root.ID
	root.State, root.FeatureIndex, root.Rule = tree.Internal, 0, feature.NewCategoricalRule(2)
	root.LeftID, root.RightID = left.ID, right.ID
	root.Prediction = tree.NewPrediction(6, 4)
	left.State, left.Prediction = tree.Leaf, tree.NewPrediction(5, 1)
	right.State, right.Prediction = tree.Leaf, tree.NewPrediction(1, 3)
	return tree.New(root.ID, ns, "survived", features)
}

func TestTreeRoundTrip(t *testing.T) {
	ctx := context.Background()
	original := testTree(t)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteJSONTree(ctx, original, buf))

	read, err := ReadJSONTree(ctx, tree.NewMemoryNodeStore(), bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, original.RootID, read.RootID)
	assert.Equal(t, "survived", read.Label)
	assert.Equal(t, original.String(), read.String())
	for _, x := range [][]float64{{2, 10}, {0, 10}, {9, 10}} {
		want, err := original.Predict(ctx, x)
		require.NoError(t, err)
		got, err := read.Predict(ctx, x)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestNodeEncodeDecoder(t *testing.T) {
	ned := NewNodeEncodeDecoder([]feature.Feature{feature.NewContinuousFeature("fare")})
	n := &tree.Node{
		ID: "7", ParentID: "3", Height: 2, State: tree.Internal,
		FeatureIndex: 0, Rule: feature.NewContinuousRule(12.5),
		LeftID: "8", RightID: "9", Prediction: tree.NewPrediction(1, 2),
	}
	b, err := ned.Encode(n)
	require.NoError(t, err)
	decoded, err := ned.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, n, decoded)

	unresolved := &tree.Node{ID: "10", ParentID: "7", Height: 3}
	b, err = ned.Encode(unresolved)
	require.NoError(t, err)
	decoded, err = ned.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, unresolved, decoded)
}

func TestReadJSONTreeErrors(t *testing.T) {
	ctx := context.Background()
	for name, doc := range map[string]string{
		"not json":        `{`,
		"no root":         `{"label":"y","features":[{"name":"x","type":"boolean"}],"nodes":[]}`,
		"no features":     `{"rootID":"1","label":"y","nodes":[]}`,
		"bad state":       `{"rootID":"1","label":"y","features":[{"name":"x","type":"boolean"}],"nodes":[{"id":"1","h":0,"s":"sprouting"}]}`,
		"internal no kid": `{"rootID":"1","label":"y","features":[{"name":"x","type":"boolean"}],"nodes":[{"id":"1","h":0,"s":"internal","r":{"t":"boolean","f":"x"}}]}`,
	} {
		_, err := ReadJSONTree(ctx, tree.NewMemoryNodeStore(), bytes.NewReader([]byte(doc)))
		assert.Error(t, err, name)
	}
}
