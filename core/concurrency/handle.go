// File: core/concurrency/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"context"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/momentics/speedcore/api"
)

var _ api.Awaitable = (*Handle)(nil)

// Handle observes the outcome of one task submitted via SubmitAwait.
type Handle struct {
	id   string
	done chan struct{}
	err  error // written once, before done is closed
}

func newHandle() *Handle {
	return &Handle{
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}
}

// ID uniquely identifies the task, and appears in panic log events.
func (h *Handle) ID() string { return h.id }

// Done is closed once the task has finished, successfully or not.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the error returned by the task, or a *api.TaskPanicError if it
// panicked. It returns nil while the task is still pending.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Wait blocks until the task finishes, returning its outcome, or until ctx
// is done, returning ctx.Err(). The task keeps running in the latter case.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run executes task, containing any panic. It reports whether one occurred.
func (h *Handle) run(task func() error) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			h.err = &api.TaskPanicError{Value: r, Stack: debug.Stack()}
			panicked = true
		}
		close(h.done)
	}()
	h.err = task()
	return false
}
