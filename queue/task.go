package queue

import (
	"fmt"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/tree"
)

// Task is a tree.Node waiting to be resolved,
// with the training points its ancestors route to it.
type Task struct {
	Node     *tree.Node
	PointSet *dataset.PointSet
}

// ID returns the ID of the task's node.
func (t *Task) ID() string {
	return t.Node.ID
}

// Points returns the number of training points of the task.
func (t *Task) Points() int {
	if t.PointSet == nil {
		return 0
	}
	return t.PointSet.Count()
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s height: %d points: %d}", t.Node.ID, t.Node.Height, t.Points())
}
