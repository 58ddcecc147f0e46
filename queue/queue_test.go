package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(id string) *Task {
	return &Task{Node: &tree.Node{ID: id}}
}

func TestQueueOrderAndCounts(t *testing.T) {
	ctx := context.Background()
	q := New()
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, q.Push(ctx, task(id)))
	}
	pending, running, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, pending)
	assert.Equal(t, 0, running)

	tk, tctx, err := q.Pull(ctx)
	require.NoError(t, err)
	require.NotNil(t, tctx)
	assert.Equal(t, "1", tk.ID())
	pending, running, err = q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)
	assert.Equal(t, 1, running)

	require.NoError(t, q.Drop(ctx, "1"))
	for _, id := range []string{"2", "3", "1"} {
		tk, _, err = q.Pull(ctx)
		require.NoError(t, err)
		assert.Equal(t, id, tk.ID())
		require.NoError(t, q.Complete(ctx, id))
	}
	tk, tctx, err = q.Pull(ctx)
	require.NoError(t, err)
	assert.Nil(t, tk)
	assert.Nil(t, tctx)
	require.NoError(t, WaitFor(ctx, q, time.Millisecond))
}

func TestDropAfterCompleteIsNoop(t *testing.T) {
	ctx := context.Background()
	q := New()
	require.NoError(t, q.Push(ctx, task("1")))
	_, _, err := q.Pull(ctx)
	require.NoError(t, err)
	require.NoError(t, q.Complete(ctx, "1"))
	require.NoError(t, q.Drop(ctx, "1"))
	pending, running, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, pending+running)
}

func TestStopCancelsPulledContexts(t *testing.T) {
	ctx := context.Background()
	q := New()
	require.NoError(t, q.Push(ctx, task("1")))
	_, tctx, err := q.Pull(ctx)
	require.NoError(t, err)
	require.NoError(t, q.Stop(ctx))
	assert.Error(t, tctx.Err())
}

func TestWaitForTimesOut(t *testing.T) {
	q := New()
	require.NoError(t, q.Push(context.Background(), task("1")))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Equal(t, context.DeadlineExceeded, WaitFor(ctx, q, time.Millisecond))
}

func TestQueueStringReportsPoints(t *testing.T) {
	ctx := context.Background()
	ps, err := dataset.New([][]float64{{0}, {1}, {1}}, []bool{false, true, true}, []feature.Type{feature.Boolean}, 1)
	require.NoError(t, err)
	q := New()
	require.NoError(t, q.Push(ctx, &Task{Node: &tree.Node{ID: "1", Height: 2}, PointSet: ps}))
	require.NoError(t, q.Push(ctx, task("2")))
	assert.Equal(t, "{Queue pending: 2 (3 points) running: 0 (0 points)}", fmt.Sprint(q))
	tk, _, err := q.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, "{Task 1 height: 2 points: 3}", tk.String())
	assert.Equal(t, "{Queue pending: 1 (0 points) running: 1 (3 points)}", fmt.Sprint(q))
}
