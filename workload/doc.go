// Package workload
// Author: momentics <momentics@gmail.com>
//
// Timed harness workloads that drive the speedcore primitives end to end:
// producer/consumer over BoundedQueue, task fan-out over WorkerPool and
// batch allocation over Arena. Each returns a Result for reporting.
package workload
