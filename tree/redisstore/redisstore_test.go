package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/redis.v5"
)

func TestRandString(t *testing.T) {
	s := randString(IDLength)
	assert.Len(t, s, IDLength)
	for _, c := range s {
		assert.Contains(t, idChars, string(c))
	}
	assert.NotEqual(t, s, randString(IDLength))
}

func TestKeyFor(t *testing.T) {
	rs := &redisStore{prefix: "sapling"}
	assert.Equal(t, "sapling:abc", rs.keyFor("abc"))
}

// TestRedisStore runs against the server at SAPLING_TEST_REDIS_ADDR.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("SAPLING_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SAPLING_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rc := redis.NewClient(&redis.Options{Addr: addr})
	features := []feature.Feature{feature.NewContinuousFeature("age")}
	ns := New(rc, "sapling-test", features)
	defer ns.Close(ctx)

	n := &tree.Node{Height: 1, State: tree.Internal, Rule: feature.NewContinuousRule(3.5), LeftID: "a", RightID: "b", Prediction: tree.NewPrediction(2, 1)}
	require.NoError(t, ns.Create(ctx, n))
	assert.Len(t, n.ID, IDLength)
	got, err := ns.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got)

	n.State, n.LeftID, n.RightID, n.Rule = tree.Leaf, "", "", feature.Rule{}
	require.NoError(t, ns.Store(ctx, n))
	got, err = ns.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, tree.Leaf, got.State)

	require.NoError(t, ns.Delete(ctx, n))
	got, err = ns.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
