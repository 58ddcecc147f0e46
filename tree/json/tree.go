/*
Package json serializes trees and their nodes as JSON.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	fjson "github.com/pbanos/sapling/feature/json"
	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
)

/*
WriteJSONTree takes a context.Context, a pointer to a tree.Tree
and an io.Writer and serializes the given tree as JSON onto the
io.Writer.
A tree is serialized as a JSON object with the following fields:
* "rootID": a string with the ID of the node at the root of the tree
* "label": a string with the name of the label the tree predicts
* "features": an array with the features of the tree, as serialized by
  feature/json's MarshalFeatures
* "nodes": an array containing the nodes that can be traversed on the tree
  serialized by a NodeEncodeDecoder for the tree's features, parents first.
An error is returned if the tree cannot be traversed, serialized or written
onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, t *tree.Tree, w io.Writer) error {
	err := marshalJSONTreeHeader(t, w)
	if err != nil {
		return err
	}
	ned := NewNodeEncodeDecoder(t.Features)
	var i int
	err = t.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error {
		err := writeNode(i, n, ned, w)
		i++
		return err
	})
	if err != nil {
		return errors.Wrap(err, "writing tree nodes")
	}
	_, err = w.Write([]byte(`]}`))
	return err
}

/*
ReadJSONTree takes a context.Context, a tree.NodeStore and an
io.Reader, stores the nodes of the tree serialized by WriteJSONTree
on the io.Reader in the node store and returns the tree.
An error is returned if the JSON cannot be read from the io.Reader,
it is not a valid tree, or its nodes cannot be stored.
*/
func ReadJSONTree(ctx context.Context, ns tree.NodeStore, r io.Reader) (*tree.Tree, error) {
	dec := json.NewDecoder(r)
	jt := &struct {
		RootID   string            `json:"rootID"`
		Label    string            `json:"label"`
		Features json.RawMessage   `json:"features"`
		Nodes    []json.RawMessage `json:"nodes"`
	}{}
	err := dec.Decode(jt)
	if err != nil {
		return nil, errors.Wrap(err, "decoding tree")
	}
	if jt.RootID == "" {
		return nil, fmt.Errorf("no root node id available")
	}
	if len(jt.Features) == 0 {
		return nil, fmt.Errorf("no features defined")
	}
	features, err := fjson.UnmarshalFeatures(jt.Features)
	if err != nil {
		return nil, errors.Wrap(err, "decoding tree features")
	}
	ned := NewNodeEncodeDecoder(features)
	for _, jn := range jt.Nodes {
		n, err := ned.Decode(jn)
		if err != nil {
			return nil, err
		}
		err = ns.Store(ctx, n)
		if err != nil {
			return nil, errors.Wrapf(err, "storing node %v", n.ID)
		}
	}
	return tree.New(jt.RootID, ns, jt.Label, features), nil
}

func marshalJSONTreeHeader(t *tree.Tree, w io.Writer) error {
	jrootID, err := json.Marshal(t.RootID)
	if err != nil {
		return err
	}
	jLabel, err := json.Marshal(t.Label)
	if err != nil {
		return err
	}
	jFeatures, err := fjson.MarshalFeatures(t.Features)
	if err != nil {
		return err
	}
	header := fmt.Sprintf(`{"rootID":%s,"label":%s,"features":%s,"nodes":[`, jrootID, jLabel, jFeatures)
	_, err = w.Write([]byte(header))
	return err
}

func writeNode(i int, n *tree.Node, ned NodeEncodeDecoder, w io.Writer) error {
	if i != 0 {
		_, err := w.Write([]byte(","))
		if err != nil {
			return err
		}
	}
	jn, err := ned.Encode(n)
	if err != nil {
		return err
	}
	_, err = w.Write(jn)
	return err
}
