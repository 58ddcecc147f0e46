package graphviz

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-graphviz"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("svg")
	require.NoError(t, err)
	assert.Equal(t, graphviz.SVG, f)
	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	ns := tree.NewMemoryNodeStore()
	root, left, right := &tree.Node{}, &tree.Node{Height: 1}, &tree.Node{Height: 1}
	for _, n := range []*tree.Node{root, left, right} {
		require.NoError(t, ns.Create(ctx, n))
	}
	left.ParentID, right.ParentID = root.ID, root.ID
	root.State, root.Rule, root.LeftID, root.RightID = tree.Internal, feature.NewBooleanRule(), left.ID, right.ID
	root.Prediction = tree.NewPrediction(2, 2)
	left.State, left.Prediction = tree.Leaf, tree.NewPrediction(2, 0)
	right.State, right.Prediction = tree.Leaf, tree.NewPrediction(0, 2)
	tr := tree.New(root.ID, ns, "sick", []feature.Feature{feature.NewBooleanFeature("smoker")})

	buf := &bytes.Buffer{}
	require.NoError(t, Render(ctx, tr, graphviz.XDOT, buf))
	out := buf.String()
	assert.Contains(t, out, "smoker is false")
	assert.Contains(t, out, "sick: false (0/2)")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
}
