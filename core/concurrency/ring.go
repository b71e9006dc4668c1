// File: core/concurrency/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ring is the fixed-capacity circular storage behind BoundedQueue.
// It performs no synchronization; the owner serializes every call.

package concurrency

type ring[T any] struct {
	cells []T
	head  int // index of the oldest item
	count int // number of live items
}

func newRing[T any](capacity int) ring[T] {
	return ring[T]{cells: make([]T, capacity)}
}

func (r *ring[T]) empty() bool { return r.count == 0 }

func (r *ring[T]) full() bool { return r.count == len(r.cells) }

// push appends at the logical tail. Caller checks full first.
func (r *ring[T]) push(item T) {
	tail := r.head + r.count
	if tail >= len(r.cells) {
		tail -= len(r.cells)
	}
	r.cells[tail] = item
	r.count++
}

// pop removes from the logical head. Caller checks empty first.
func (r *ring[T]) pop() T {
	var zero T
	item := r.cells[r.head]
	r.cells[r.head] = zero // drop the reference for the GC
	r.head++
	if r.head == len(r.cells) {
		r.head = 0
	}
	r.count--
	return item
}
