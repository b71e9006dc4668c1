// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// GracefulShutdown combines the orderly termination of a component.
type GracefulShutdown interface {
	// Shutdown stops accepting work, drains what was accepted and waits for
	// all internal goroutines. Calling it more than once is safe.
	Shutdown()
}
