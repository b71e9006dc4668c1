// Package api
// Author: momentics
//
// Executor contract for fixed-size parallel task dispatch.

package api

// Executor abstracts a fixed roster of workers draining a task queue.
type Executor interface {
	// Submit schedules task for execution. It never blocks; it fails with
	// ErrPoolClosed once shutdown has begun.
	Submit(task func()) error

	// NumWorkers returns the number of workers, fixed at construction.
	NumWorkers() int

	GracefulShutdown
}
