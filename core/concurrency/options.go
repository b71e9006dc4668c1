// File: core/concurrency/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "github.com/joeycumines/logiface"

// Option configures a WorkerPool.
type Option func(*poolConfig)

type poolConfig struct {
	name         string
	logger       *logiface.Logger[logiface.Event]
	pinWorkers   bool
	panicHandler func(workerID int, recovered any)
}

func defaultPoolConfig() poolConfig {
	return poolConfig{name: "pool"}
}

// WithName labels the pool in log events.
func WithName(name string) Option {
	return func(c *poolConfig) {
		c.name = name
	}
}

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return func(c *poolConfig) {
		c.logger = logger
	}
}

// WithCPUPinning locks each worker to its own OS thread and pins that thread
// to CPU (workerID mod NumCPU). Pinning failures are logged, not fatal.
func WithCPUPinning(enabled bool) Option {
	return func(c *poolConfig) {
		c.pinWorkers = enabled
	}
}

// WithPanicHandler is invoked, on the worker goroutine, for every panic
// recovered from a fire-and-forget task.
func WithPanicHandler(fn func(workerID int, recovered any)) Option {
	return func(c *poolConfig) {
		c.panicHandler = fn
	}
}
