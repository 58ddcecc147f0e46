package tree

import (
	"context"
	"strconv"

	"github.com/pbanos/sapling/internal/ctxlock"
)

/*
NodeStore keeps the nodes of trees by ID. Nodes refer to their parent and
children by ID, so a tree is its root ID plus the store holding its nodes.
Every method honors the cancellation of its context where the backend allows.
*/
type NodeStore interface {
	// Create assigns a new ID to the node and stores it
	Create(ctx context.Context, n *Node) error
	// Get returns the node with the given ID, or nil
	// if the store has none
	Get(ctx context.Context, id string) (*Node, error)
	// Store saves the node under its current ID
	Store(ctx context.Context, n *Node) error
	// Delete removes the node from the store
	Delete(ctx context.Context, n *Node) error
	// Close releases the resources of the store once
	// pending changes are applied
	Close(ctx context.Context) error
}

type memoryNodeStore struct {
	nodes  map[string]*Node
	lock   ctxlock.RWMutex
	nextID uint64
}

// NewMemoryNodeStore returns an implementation
// of NodeStore with the process memory space
// as underlying backend. Nodes are given
// sequential IDs starting at "1", so the store
// works as an arena indexed by node ID.
func NewMemoryNodeStore() NodeStore {
	return &memoryNodeStore{
		nodes: make(map[string]*Node),
	}
}

func (mns *memoryNodeStore) Create(ctx context.Context, n *Node) error {
	return mns.lock.WithLock(ctx, func(ctx context.Context) error {
		taken := true
		for taken {
			if err := ctx.Err(); err != nil {
				return err
			}
			n.ID = mns.generateNodeID()
			_, taken = mns.nodes[n.ID]
		}
		mns.nodes[n.ID] = n
		return nil
	})
}

func (mns *memoryNodeStore) Store(ctx context.Context, n *Node) error {
	return mns.lock.WithLock(ctx, func(ctx context.Context) error {
		mns.nodes[n.ID] = n
		return nil
	})
}

func (mns *memoryNodeStore) Get(ctx context.Context, id string) (*Node, error) {
	var n *Node
	err := mns.lock.WithRLock(ctx, func(ctx context.Context) error {
		n = mns.nodes[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (mns *memoryNodeStore) Delete(ctx context.Context, n *Node) error {
	return mns.lock.WithLock(ctx, func(ctx context.Context) error {
		delete(mns.nodes, n.ID)
		return nil
	})
}

func (mns *memoryNodeStore) Close(ctx context.Context) error {
	return nil
}

func (mns *memoryNodeStore) generateNodeID() string {
	mns.nextID++
	return strconv.FormatUint(mns.nextID, 10)
}
