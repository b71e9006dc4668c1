// File: pool/arena.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Arena is a single-threaded bump allocator over one fixed backing buffer.
// There is no per-allocation free: Reset rewinds the cursor in O(1) and
// invalidates every region handed out before it.

package pool

import (
	"github.com/momentics/speedcore/api"
)

// Alignment is the granularity of every allocation, in bytes.
const Alignment = 8

var _ api.Allocator[Region] = (*Arena)(nil)

// Arena is not safe for concurrent use; give each goroutine or benchmark
// phase its own.
type Arena struct {
	buf      []byte
	cursor   int    // next free offset, always a multiple of Alignment
	gen      uint64 // bumped by Reset and Release, stamps every Region
	released bool

	// statistics
	highWater int
	allocs    uint64
	failed    uint64
}

// NewArena creates an arena backed by capacity bytes.
// A zero capacity is valid: every non-empty Alloc then fails.
func NewArena(capacity int) (*Arena, error) {
	if capacity < 0 {
		return nil, api.WrapError(api.ErrCodeInvalidCapacity, api.ErrInvalidCapacity).
			WithContext("capacity", capacity)
	}
	return &Arena{buf: make([]byte, capacity)}, nil
}

// Alloc reserves size bytes, rounded up to Alignment, at the current cursor.
// It fails with api.ErrAllocationFailed when the rounded size does not fit;
// the arena is left unchanged and the caller may Reset or go elsewhere.
// The region's contents are whatever the previous user left there.
func (a *Arena) Alloc(size int) (Region, error) {
	if size < 0 {
		return Region{}, api.WrapError(api.ErrCodeInvalidArgument, api.ErrInvalidArgument).
			WithContext("size", size)
	}
	free := len(a.buf) - a.cursor
	if a.released || size > free || alignUp(size) > free {
		a.failed++
		return Region{}, api.WrapError(api.ErrCodeResourceExhausted, api.ErrAllocationFailed).
			WithContext("requested", size).
			WithContext("available", free).
			WithContext("released", a.released)
	}
	r := Region{arena: a, gen: a.gen, off: a.cursor, n: size}
	a.cursor += alignUp(size)
	if a.cursor > a.highWater {
		a.highWater = a.cursor
	}
	a.allocs++
	return r, nil
}

// Reset rewinds the cursor to zero. Memory is not scrubbed. Every region
// returned so far becomes stale.
func (a *Arena) Reset() {
	a.cursor = 0
	a.gen++
}

// Release drops the backing buffer and makes the arena unusable: regions
// become stale and later allocations fail.
func (a *Arena) Release() {
	a.buf = nil
	a.cursor = 0
	a.gen++
	a.released = true
}

// Used returns the number of bytes consumed, including alignment padding.
func (a *Arena) Used() int { return a.cursor }

// Capacity returns the size of the backing buffer.
func (a *Arena) Capacity() int { return len(a.buf) }

// Available returns the number of bytes left before exhaustion.
func (a *Arena) Available() int { return len(a.buf) - a.cursor }

// Generation returns the current reset generation.
func (a *Arena) Generation() uint64 { return a.gen }

// alignUp rounds n up to the next multiple of Alignment.
func alignUp(n int) int {
	return (n + Alignment - 1) &^ (Alignment - 1)
}
