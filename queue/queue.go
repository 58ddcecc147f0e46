package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/pbanos/sapling/internal/ctxlock"
)

// Queue holds the tasks that resolve the nodes of a tree
// being grown. Workers pull a task, branch its node out
// and then complete it, or drop it so another worker can
// pull it again.
type Queue interface {
	// Push adds a pending task.
	Push(context.Context, *Task) error
	// Pull moves the oldest pending task to running and
	// returns it with a context that is cancelled when the
	// queue stops. With no pending task it returns nils.
	Pull(context.Context) (*Task, context.Context, error)
	// Drop takes the ID of a running task and makes it
	// pending again. Unknown or completed IDs are ignored.
	Drop(context.Context, string) error
	// Complete takes the ID of a running task and
	// forgets it.
	Complete(context.Context, string) error
	// Count returns the number of pending and running tasks.
	Count(context.Context) (int, int, error)
	// Stop cancels the contexts of pulled tasks.
	Stop(context.Context) error
}

type memQueue struct {
	pendingTasks []*Task
	runningTasks map[string]*Task
	lock         ctxlock.RWMutex
	ctx          context.Context
	ctxCancel    context.CancelFunc
}

// New returns a queue backed only by the process memory.
// Tasks are pulled in the order they were pushed.
func New() Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &memQueue{
		runningTasks: make(map[string]*Task),
		ctx:          ctx,
		ctxCancel:    cancel,
	}
}

// WaitFor takes a context and a queue and waits for
// all its tasks to have been processed, that is, for
// for the given queue's Count method to return 0, 0, nil.
// It polls the queue every pollInterval.
// It will return a non-nil error if the given context
// times out or is cancelled, or if the queue's Count
// operation returns an error.
func WaitFor(ctx context.Context, q Queue, pollInterval time.Duration) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		pending, running, err := q.Count(ctx)
		if err != nil {
			return err
		}
		if pending+running == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (mq *memQueue) Push(ctx context.Context, t *Task) error {
	return mq.lock.WithLock(ctx, func(ctx context.Context) error {
		mq.pendingTasks = append(mq.pendingTasks, t)
		return nil
	})
}

func (mq *memQueue) Pull(ctx context.Context) (*Task, context.Context, error) {
	var task *Task
	err := mq.lock.WithLock(ctx, func(ctx context.Context) error {
		if len(mq.pendingTasks) == 0 {
			return nil
		}
		task = mq.pendingTasks[0]
		mq.pendingTasks[0] = nil
		mq.pendingTasks = mq.pendingTasks[1:]
		mq.runningTasks[task.ID()] = task
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if task == nil {
		return nil, nil, nil
	}
	return task, mq.ctx, nil
}

func (mq *memQueue) Drop(ctx context.Context, id string) error {
	return mq.lock.WithLock(ctx, func(ctx context.Context) error {
		t, ok := mq.runningTasks[id]
		if !ok {
			return nil
		}
		delete(mq.runningTasks, id)
		mq.pendingTasks = append(mq.pendingTasks, t)
		return nil
	})
}

func (mq *memQueue) Complete(ctx context.Context, id string) error {
	return mq.lock.WithLock(ctx, func(ctx context.Context) error {
		delete(mq.runningTasks, id)
		return nil
	})
}

func (mq *memQueue) Count(ctx context.Context) (int, int, error) {
	var pending, running int
	err := mq.lock.WithRLock(ctx, func(ctx context.Context) error {
		pending = len(mq.pendingTasks)
		running = len(mq.runningTasks)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return pending, running, nil
}

func (mq *memQueue) Stop(ctx context.Context) error {
	mq.ctxCancel()
	return nil
}

// String reports the number of tasks and training
// points pending and running on the queue.
func (mq *memQueue) String() string {
	var result string
	mq.lock.WithRLock(context.Background(), func(ctx context.Context) error {
		var pendingPoints, runningPoints int
		for _, t := range mq.pendingTasks {
			pendingPoints += t.Points()
		}
		for _, t := range mq.runningTasks {
			runningPoints += t.Points()
		}
		result = fmt.Sprintf("{Queue pending: %d (%d points) running: %d (%d points)}",
			len(mq.pendingTasks), pendingPoints, len(mq.runningTasks), runningPoints)
		return nil
	})
	return result
}
