// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines the scoped allocation API used by memory workloads.

package api

// Allocator hands out disjoint byte ranges and supports only whole-buffer reset.
type Allocator[R any] interface {
	// Alloc reserves size bytes, returning ErrAllocationFailed when exhausted.
	Alloc(size int) (R, error)

	// Reset releases every outstanding allocation at once.
	Reset()
}
