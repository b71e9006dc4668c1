// File: workload/result.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package workload

import (
	"fmt"
	"time"
)

// Result is the outcome of one workload run.
type Result struct {
	Name      string
	Elapsed   time.Duration
	Processed int64
}

// Millis returns Elapsed in fractional milliseconds.
func (r Result) Millis() float64 {
	return float64(r.Elapsed.Nanoseconds()) / 1e6
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %d items in %.3fms", r.Name, r.Processed, r.Millis())
}

// TotalMillis sums Millis over results.
func TotalMillis(results []Result) float64 {
	var total float64
	for _, r := range results {
		total += r.Millis()
	}
	return total
}

func mismatch(name string, got, want int64) error {
	return fmt.Errorf("%s: processed %d items, expected %d", name, got, want)
}
