// File: core/concurrency/counter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Counter is a shared progress counter mutated only through atomic adds.
// Padding keeps it on its own cache line so hot increments from many workers
// do not false-share with neighbouring fields.
type Counter struct {
	_ cpu.CacheLinePad
	n atomic.Int64
	_ cpu.CacheLinePad
}

// Inc adds one and returns the new value.
func (c *Counter) Inc() int64 { return c.n.Add(1) }

// Add adds delta and returns the new value.
func (c *Counter) Add(delta int64) int64 { return c.n.Add(delta) }

// Load returns the current value.
func (c *Counter) Load() int64 { return c.n.Load() }
