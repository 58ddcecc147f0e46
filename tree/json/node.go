package json

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/sapling/feature"
	fjson "github.com/pbanos/sapling/feature/json"
	"github.com/pbanos/sapling/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *tree.Node
	// and returns a slice of bytes with the node
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Node, error)
}

type nodeEncodeDecoder struct {
	fjson.RuleEncodeDecoder
}

type node struct {
	ID         string           `json:"id"`
	ParentID   string           `json:"pId,omitempty"`
	Height     int              `json:"h"`
	State      string           `json:"s"`
	Rule       *json.RawMessage `json:"r,omitempty"`
	LeftID     string           `json:"l,omitempty"`
	RightID    string           `json:"rt,omitempty"`
	Prediction *jsonPrediction  `json:"pred,omitempty"`
}

type jsonPrediction struct {
	Negatives int `json:"n"`
	Positives int `json:"p"`
}

/*
NewNodeEncodeDecoder takes the features of a tree and returns a
NodeEncodeDecoder that encodes nodes as JSON objects, with the rules
of internal nodes encoded by a feature/json RuleEncodeDecoder.
*/
func NewNodeEncodeDecoder(features []feature.Feature) NodeEncodeDecoder {
	return &nodeEncodeDecoder{fjson.NewRuleEncodeDecoder(features)}
}

func (ned *nodeEncodeDecoder) Encode(n *tree.Node) ([]byte, error) {
	jn := &node{
		ID:       n.ID,
		ParentID: n.ParentID,
		Height:   n.Height,
		State:    n.State.String(),
	}
	if n.State == tree.Internal {
		r, err := ned.RuleEncodeDecoder.Encode(n.FeatureIndex, n.Rule)
		if err != nil {
			return nil, fmt.Errorf("encoding node %v: %v", n.ID, err)
		}
		rr := json.RawMessage(r)
		jn.Rule = &rr
		jn.LeftID = n.LeftID
		jn.RightID = n.RightID
	}
	if n.Prediction != nil {
		jn.Prediction = &jsonPrediction{n.Prediction.Negatives(), n.Prediction.Positives()}
	}
	return json.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (*tree.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	state, err := tree.ParseState(jn.State)
	if err != nil {
		return nil, fmt.Errorf("decoding node %v: %v", jn.ID, err)
	}
	n := &tree.Node{
		ID:       jn.ID,
		ParentID: jn.ParentID,
		Height:   jn.Height,
		State:    state,
	}
	if state == tree.Internal {
		if jn.Rule == nil || jn.LeftID == "" || jn.RightID == "" {
			return nil, fmt.Errorf("decoding node %v: internal node without rule or children", jn.ID)
		}
		n.FeatureIndex, n.Rule, err = ned.RuleEncodeDecoder.Decode(*jn.Rule)
		if err != nil {
			return nil, fmt.Errorf("decoding node %v: %v", jn.ID, err)
		}
		n.LeftID = jn.LeftID
		n.RightID = jn.RightID
	}
	if jn.Prediction != nil {
		n.Prediction = tree.NewPrediction(jn.Prediction.Negatives, jn.Prediction.Positives)
	}
	return n, nil
}
