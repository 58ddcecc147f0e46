package sapling

import (
	"fmt"
)

// Error is the type of the errors returned
// when a tree cannot be grown.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNegativeMaxHeight is returned for a growth policy
	// with a negative maximum height
	ErrNegativeMaxHeight = Error("maximum height must not be negative")
	// ErrMinSplitSize is returned for a growth policy
	// with a minimum split size below 1
	ErrMinSplitSize = Error("minimum split size must be at least 1")
	// ErrFeatureCount is returned when the features given
	// do not match the columns of the training points
	ErrFeatureCount = Error("feature count mismatch")
)

// GrowthPolicy holds the configuration
// for when a node must not be split
// further.
type GrowthPolicy struct {
	// MaxHeight is the maximum depth of a node.
	// Nodes at this height are always leaves,
	// so a MaxHeight of 0 grows a single leaf
	// predicting the majority label.
	MaxHeight int
	// MinSplitSize is the minimum number of
	// training points each side of a split must
	// hold for the split to be considered.
	MinSplitSize int
}

// DefaultGrowthPolicy returns the policy used
// when none is given: a maximum height of 10 and
// a minimum split size of 1.
func DefaultGrowthPolicy() *GrowthPolicy {
	return &GrowthPolicy{MaxHeight: 10, MinSplitSize: 1}
}

// Validate returns an error if the policy
// cannot be used to grow a tree.
func (gp *GrowthPolicy) Validate() error {
	if gp.MaxHeight < 0 {
		return fmt.Errorf("%w, got %d", ErrNegativeMaxHeight, gp.MaxHeight)
	}
	if gp.MinSplitSize < 1 {
		return fmt.Errorf("%w, got %d", ErrMinSplitSize, gp.MinSplitSize)
	}
	return nil
}

// branches returns whether a node at the given
// height may become an internal node.
func (gp *GrowthPolicy) branches(height int) bool {
	return height < gp.MaxHeight
}
