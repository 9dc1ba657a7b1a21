package talon

import (
	"errors"
	"fmt"
)

// DepthError is returned from [NewTree] when the requested depth
// is outside [1, MaxDepth].
type DepthError struct {
	Depth int
}

func (e DepthError) Error() string {
	return fmt.Sprintf("tree depth must be in [1, %d] (got %d)", MaxDepth, e.Depth)
}

// CapacityError is returned when a leaf load would exceed
// the tree's fixed capacity of 2^depth leaves.
type CapacityError struct {
	Count, Depth int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf(
		"%d leaves exceed the capacity of a depth-%d tree (%d)",
		e.Count, e.Depth, 1<<e.Depth,
	)
}

// LeafRangeError is returned from update, path, and proof operations
// when the leaf index is outside the populated leaf sequence.
type LeafRangeError struct {
	Index, Count int
}

func (e LeafRangeError) Error() string {
	return fmt.Sprintf("leaf index %d out of range [0, %d)", e.Index, e.Count)
}

// ErrStale is returned from path and proof queries
// when the leaf sequence has been replaced since the last rebuild,
// so the built structure no longer corresponds to the leaves.
var ErrStale = errors.New("tree has not been rebuilt since leaves were loaded")
