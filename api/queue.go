// Package api
// Author: momentics@gmail.com
//
// Bounded blocking queue for cross-goroutine producer/consumer handoff.

package api

import "context"

// Queue is a fixed-capacity FIFO contract with blocking insertion and removal.
type Queue[T any] interface {
	// Push appends item, blocking while the queue is full.
	Push(item T)
	// Pop removes the oldest item, blocking while the queue is empty.
	Pop() T
	// PushContext is Push that gives up when ctx is done.
	PushContext(ctx context.Context, item T) error
	// PopContext is Pop that gives up when ctx is done.
	PopContext(ctx context.Context) (T, error)
	// Len returns current number of items.
	Len() int
	// Cap returns the fixed capacity.
	Cap() int
}
