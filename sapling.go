/*
Package sapling grows binary decision trees that predict a boolean label from
feature vectors with boolean, categorical and continuous features, splitting
points on the feature and rule with the greatest Gini impurity gain.
*/
package sapling

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"sync"
	"time"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/queue"
	"github.com/pbanos/sapling/tree"
	"github.com/sirupsen/logrus"
)

// Seed takes a context, a label name, a slice of features,
// a point set, a queue and a node store and sets everything
// up so that workers that consume from the queue afterwards
// grow a tree that predicts the label from the given features
// according to the training points in the given set.
// Specifically it will create the root node of the tree on the
// node store and push a task to branch it out on the queue.
// The function returns the tree that can be grown or an error
// if the node cannot be created on the store, or the task pushed
// to the queue (in the amount of time allowed by the given
// context).
func Seed(ctx context.Context, label string, features []feature.Feature, ps *dataset.PointSet, q queue.Queue, ns tree.NodeStore) (*tree.Tree, error) {
	if len(ps.Types()) != len(features) {
		return nil, fmt.Errorf("seeding tree: %w: %d features for a point set with %d", ErrFeatureCount, len(features), len(ps.Types()))
	}
	n := &tree.Node{}
	err := ns.Create(ctx, n)
	if err != nil {
		return nil, err
	}
	task := &queue.Task{Node: n, PointSet: ps}
	t := tree.New(n.ID, ns, label, features)
	err = q.Push(ctx, task)
	if err != nil {
		ns.Delete(ctx, n)
		return nil, err
	}
	return t, nil
}

// BranchOut takes a context, a task, a tree and a growth policy,
// and resolves the node in the task using the task's point set.
// The node becomes a leaf if it is at the policy's maximum height,
// its point set has no split with positive gain or the split would
// leave a child without points. Otherwise the
// node becomes internal, its two children are created in the tree's
// node store and the tasks to resolve them are returned.
// The node is stored in the tree's node store in any case.
func BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree, gp *GrowthPolicy) (tasks []*queue.Task, e error) {
	n := task.Node
	ps := task.PointSet
	defer func() {
		err := t.NodeStore.Store(ctx, n)
		if e == nil {
			e = err
		}
	}()
	n.Prediction = tree.NewPredictionFromSet(ps)
	n.State = tree.Leaf
	if !gp.branches(n.Height) {
		return nil, nil
	}
	split := ps.BestSplit()
	if !split.Usable() {
		return nil, nil
	}
	left, right, err := ps.Partition(split.FeatureIndex, split.Rule)
	if errors.Is(err, dataset.ErrEmptyPartition) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for _, sps := range []*dataset.PointSet{left, right} {
		sn := &tree.Node{ParentID: n.ID, Height: n.Height + 1}
		err = t.NodeStore.Create(ctx, sn)
		if err != nil {
			for _, created := range tasks {
				t.NodeStore.Delete(ctx, created.Node)
			}
			return nil, err
		}
		tasks = append(tasks, &queue.Task{Node: sn, PointSet: sps})
	}
	n.State = tree.Internal
	n.FeatureIndex = split.FeatureIndex
	n.Rule = split.Rule
	n.LeftID = tasks[0].Node.ID
	n.RightID = tasks[1].Node.ID
	return tasks, nil
}

// Work takes a context, a tree, a queue, a growth policy,
// an emptyQueueSleep duration and a logger and enters a loop
// in which it:
//   - pulls a task for the queue,
//   - branches its node out into new subnodes using BranchOut
//   - pushes the tasks for the new subnodes into the queue
//   - marks the task as completed on the queue
//
// If at some point no task can be pulled from the queue and
// the sum of tasks running and pending on the queue is 0, the
// worker ends returning nil. If no task can be pulled but the
// sum is not 0, then the worker will sleep for the given
// emptyQueueSleep duration and then retry.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if BranchOut returns a non-nil
// error or if an operation with the given queue returns a
// non-nil error. A nil logger discards all messages.
func Work(ctx context.Context, t *tree.Tree, q queue.Queue, gp *GrowthPolicy, emptyQueueSleep time.Duration, logger logrus.FieldLogger) error {
	if logger == nil {
		logger = discardLogger()
	}
	for {
		task, tctx, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			p, r, err := q.Count(ctx)
			if err != nil {
				return err
			}
			if r+p == 0 {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(emptyQueueSleep):
			}
			continue
		}
		mctx, cancel := mergeCtxCancel(tctx, ctx)
		err = workTask(mctx, task, t, q, gp, logger)
		cancel()
		if err != nil {
			return err
		}
		err = ctx.Err()
		if err != nil {
			return err
		}
	}
	return nil
}

func workTask(ctx context.Context, task *queue.Task, t *tree.Tree, q queue.Queue, gp *GrowthPolicy, logger logrus.FieldLogger) error {
	defer func() {
		q.Drop(ctx, task.ID())
	}()
	tasks, err := BranchOut(ctx, task, t, gp)
	if err != nil {
		return err
	}
	n := task.Node
	fields := logrus.Fields{
		"node":   n.ID,
		"height": n.Height,
		"points": task.PointSet.Count(),
	}
	if n.State == tree.Internal {
		_, gain := task.PointSet.BestGain()
		fields["feature"] = t.Describe(n)
		fields["gain"] = gain
	}
	logger.WithFields(fields).Debugf("Resolved node as %v", n.State)
	for _, st := range tasks {
		err = q.Push(ctx, st)
		if err != nil {
			return err
		}
	}
	return q.Complete(ctx, task.ID())
}

func mergeCtxCancel(ctx1, ctx2 context.Context) (context.Context, context.CancelFunc) {
	mctx, cancel := context.WithCancel(ctx1)
	go func() {
		select {
		case <-mctx.Done():
		case <-ctx2.Done():
			cancel()
		}
	}()
	return mctx, cancel
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}

// GrowOptions holds optional settings for Grow
type GrowOptions struct {
	// Workers is the number of goroutines resolving nodes
	// concurrently. Values below 1 mean 1.
	Workers int
	// NodeStore is where the nodes of the tree are stored.
	// Defaults to a new memory node store.
	NodeStore tree.NodeStore
	// Logger receives debug messages for each resolved node.
	// Nil discards them.
	Logger logrus.FieldLogger
	// EmptyQueueSleep is the time an idle worker waits
	// before trying to pull a task again. Defaults to 1ms.
	EmptyQueueSleep time.Duration
}

/*
Grow takes a context, a label name, the features of the training points, their
rows of feature values, their labels, a growth policy and optional settings,
and returns the fully grown tree or an error. Sibling subtrees are grown in
parallel when more than one worker is requested.
*/
func Grow(ctx context.Context, label string, features []feature.Feature, rows [][]float64, labels []bool, gp *GrowthPolicy, opts *GrowOptions) (*tree.Tree, error) {
	if gp == nil {
		gp = DefaultGrowthPolicy()
	}
	err := gp.Validate()
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &GrowOptions{}
	}
	ps, err := dataset.New(rows, labels, feature.Types(features), gp.MinSplitSize)
	if err != nil {
		return nil, err
	}
	ns := opts.NodeStore
	if ns == nil {
		ns = tree.NewMemoryNodeStore()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	sleep := opts.EmptyQueueSleep
	if sleep <= 0 {
		sleep = time.Millisecond
	}
	q := queue.New()
	defer q.Stop(ctx)
	t, err := Seed(ctx, label, features, ps, q, ns)
	if err != nil {
		return nil, err
	}
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errs := make(chan error, workers)
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var logger logrus.FieldLogger
			if opts.Logger != nil {
				logger = opts.Logger.WithField("worker", i)
			}
			err := Work(wctx, t, q, gp, sleep, logger)
			if err != nil {
				errs <- err
				cancel()
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}
	return t, nil
}
