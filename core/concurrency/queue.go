// File: core/concurrency/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// BoundedQueue is a fixed-capacity FIFO with blocking Push/Pop, used for
// producer/consumer handoff. Full queues apply backpressure to producers.

package concurrency

import (
	"context"
	"sync"

	"github.com/momentics/speedcore/api"
)

// Ensure compile-time interface compliance.
var _ api.Queue[any] = (*BoundedQueue[any])(nil)

// BoundedQueue is safe for any number of producers and consumers.
// The zero value is not usable; construct with NewBoundedQueue.
type BoundedQueue[T any] struct {
	mu       sync.Mutex
	notEmpty sync.Cond // signalled when an item is pushed
	notFull  sync.Cond // signalled when a slot is freed
	ring     ring[T]
}

// NewBoundedQueue creates a queue holding at most capacity items.
func NewBoundedQueue[T any](capacity int) (*BoundedQueue[T], error) {
	if capacity <= 0 {
		return nil, api.WrapError(api.ErrCodeInvalidCapacity, api.ErrInvalidCapacity).
			WithContext("capacity", capacity)
	}
	q := &BoundedQueue[T]{ring: newRing[T](capacity)}
	q.notEmpty.L = &q.mu
	q.notFull.L = &q.mu
	return q, nil
}

// Push appends item at the tail, blocking while the queue is full.
func (q *BoundedQueue[T]) Push(item T) {
	_ = q.PushContext(context.Background(), item)
}

// Pop removes and returns the head item, blocking while the queue is empty.
func (q *BoundedQueue[T]) Pop() T {
	item, _ := q.PopContext(context.Background())
	return item
}

// PushContext behaves like Push but returns ctx.Err() if ctx is done before
// a slot frees up. The item is not enqueued in that case.
func (q *BoundedQueue[T]) PushContext(ctx context.Context, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ring.full() {
		defer q.wakeOnDone(ctx, &q.notFull)()
	}
	for q.ring.full() {
		if err := ctx.Err(); err != nil {
			return err
		}
		q.notFull.Wait()
	}
	q.ring.push(item)
	q.notEmpty.Signal()
	return nil
}

// PopContext behaves like Pop but returns ctx.Err() if ctx is done before
// an item arrives.
func (q *BoundedQueue[T]) PopContext(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ring.empty() {
		defer q.wakeOnDone(ctx, &q.notEmpty)()
	}
	for q.ring.empty() {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		q.notEmpty.Wait()
	}
	item := q.ring.pop()
	q.notFull.Signal()
	return item, nil
}

// TryPush appends item without blocking; returns false if the queue is full.
func (q *BoundedQueue[T]) TryPush(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ring.full() {
		return false
	}
	q.ring.push(item)
	q.notEmpty.Signal()
	return true
}

// TryPop removes the head item without blocking; ok is false if empty.
func (q *BoundedQueue[T]) TryPop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ring.empty() {
		return item, false
	}
	item = q.ring.pop()
	q.notFull.Signal()
	return item, true
}

// Len returns the number of items currently queued.
func (q *BoundedQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.count
}

// Cap returns the fixed capacity.
func (q *BoundedQueue[T]) Cap() int {
	return len(q.ring.cells)
}

// wakeOnDone arranges for every waiter on c to be woken once ctx is done, so
// a cancelled waiter can observe ctx.Err(). Must be called with q.mu held; the
// returned func deregisters the callback. Waking the others is harmless, they
// re-check their condition.
func (q *BoundedQueue[T]) wakeOnDone(ctx context.Context, c *sync.Cond) func() {
	if ctx.Done() == nil {
		return func() {}
	}
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		c.Broadcast()
		q.mu.Unlock()
	})
	return func() { stop() }
}
