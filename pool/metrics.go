// File: pool/metrics.go
// Author: momentics <momentics@gmail.com>

package pool

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	Capacity    int     // backing buffer size in bytes
	Used        int     // bytes consumed, padding included
	HighWater   int     // largest Used seen since creation
	Generation  uint64  // number of resets and releases
	Allocations uint64  // successful Alloc calls
	Failed      uint64  // Alloc calls rejected for lack of room
	Utilization float64 // Used / Capacity (0.0-1.0)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	m := ArenaMetrics{
		Capacity:    len(a.buf),
		Used:        a.cursor,
		HighWater:   a.highWater,
		Generation:  a.gen,
		Allocations: a.allocs,
		Failed:      a.failed,
	}
	if m.Capacity > 0 {
		m.Utilization = float64(m.Used) / float64(m.Capacity)
	}
	return m
}
