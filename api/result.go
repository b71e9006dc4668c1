// Package api
// Author: momentics@gmail.com
//
// Task completion contract.

package api

import "context"

// Awaitable is the observable outcome of a single submitted task.
type Awaitable interface {
	// Done is closed once the task has finished.
	Done() <-chan struct{}
	// Wait blocks until the task finished or ctx is done.
	Wait(ctx context.Context) error
	// Err returns the task outcome; only meaningful after Done is closed.
	Err() error
}
