/*
Package graphviz renders trees as graphviz graphs.
*/
package graphviz

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
)

var formats = map[string]graphviz.Format{
	"dot": graphviz.XDOT,
	"svg": graphviz.SVG,
	"png": graphviz.PNG,
	"jpg": graphviz.JPG,
}

// ParseFormat takes the name of an output format (dot, svg, png or jpg) and
// returns the graphviz format.
func ParseFormat(name string) (graphviz.Format, error) {
	f, ok := formats[name]
	if !ok {
		return "", fmt.Errorf("unknown graph format %q", name)
	}
	return f, nil
}

/*
Draw takes a context and a tree and returns a graph with a node per tree
node. Internal nodes are labeled with their rule and have an edge labeled
"yes" to their left child and "no" to their right child. Leaves are boxes
labeled with their decision and label counts.
The caller must close the returned graph and graphviz.
*/
func Draw(ctx context.Context, t *tree.Tree) (*graphviz.Graphviz, *cgraph.Graph, error) {
	gv := graphviz.New()
	g, err := gv.Graph()
	if err != nil {
		gv.Close()
		return nil, nil, err
	}
	gnodes := make(map[string]*cgraph.Node)
	err = t.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error {
		gn, err := g.CreateNode(n.ID)
		if err != nil {
			return err
		}
		gnodes[n.ID] = gn
		if n.State == tree.Internal {
			gn.Set("label", t.Describe(n))
		} else {
			gn.Set("label", fmt.Sprintf("%s: %v", t.Label, n.Prediction))
			gn.Set("shape", "box")
		}
		parent, ok := gnodes[n.ParentID]
		if !ok {
			return nil
		}
		e, err := g.CreateEdge("", parent, gn)
		if err != nil {
			return err
		}
		pn, err := t.Get(ctx, n.ParentID)
		if err != nil {
			return err
		}
		if pn != nil && pn.LeftID == n.ID {
			e.SetLabel("yes")
		} else {
			e.SetLabel("no")
		}
		return nil
	})
	if err != nil {
		g.Close()
		gv.Close()
		return nil, nil, errors.Wrap(err, "drawing tree")
	}
	return gv, g, nil
}

// Render takes a context, a tree, a format and an io.Writer and writes the
// tree's graph in the given format onto the writer.
func Render(ctx context.Context, t *tree.Tree, format graphviz.Format, w io.Writer) error {
	gv, g, err := Draw(ctx, t)
	if err != nil {
		return err
	}
	defer gv.Close()
	defer g.Close()
	return errors.Wrap(gv.Render(g, format, w), "rendering tree")
}
