/*
Package redisstore provides a tree.NodeStore that keeps nodes in a Redis
database, encoded as JSON.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	tjson "github.com/pbanos/sapling/tree/json"
	"github.com/pkg/errors"
	"gopkg.in/redis.v5"
)

// IDLength is the length of the random IDs given to created nodes
const IDLength = 20

type redisStore struct {
	rc      *redis.Client
	prefix  string
	nencdec tjson.NodeEncodeDecoder
}

/*
New takes a redis client, a key prefix and the features of the tree whose
nodes will be stored, and returns a tree.NodeStore that keeps each node under
the key "<prefix>:<node ID>".
*/
func New(rc *redis.Client, prefix string, features []feature.Feature) tree.NodeStore {
	return &redisStore{rc, prefix, tjson.NewNodeEncodeDecoder(features)}
}

func (rs *redisStore) Create(ctx context.Context, n *tree.Node) error {
	var ok bool
	for !ok {
		if err := ctx.Err(); err != nil {
			return err
		}
		n.ID = randString(IDLength)
		data, err := rs.nencdec.Encode(n)
		if err != nil {
			return errors.Wrap(err, "creating node: encoding node")
		}
		ok, err = rs.rc.SetNX(rs.keyFor(n.ID), data, 0).Result()
		if err != nil {
			return errors.Wrap(err, "creating node in redis")
		}
	}
	return nil
}

func (rs *redisStore) Get(ctx context.Context, id string) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rs.rc.Get(rs.keyFor(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving node %q", id)
	}
	n, err := rs.nencdec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving node %q: decoding %q", id, data)
	}
	return n, nil
}

func (rs *redisStore) Store(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(n.ID)
	data, err := rs.nencdec.Encode(n)
	if err != nil {
		return errors.Wrapf(err, "storing node %q: encoding node", redisID)
	}
	err = rs.rc.Set(redisID, data, 0).Err()
	if err != nil {
		return errors.Wrapf(err, "storing node %q in redis", redisID)
	}
	return nil
}

func (rs *redisStore) Delete(ctx context.Context, n *tree.Node) error {
	redisID := rs.keyFor(n.ID)
	err := rs.rc.Del(redisID).Err()
	if err != nil {
		return errors.Wrapf(err, "deleting node %q from redis", redisID)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}
