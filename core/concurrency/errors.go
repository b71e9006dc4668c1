// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for concurrency module.

package concurrency

import "github.com/momentics/speedcore/api"

var (
	// ErrPoolClosed indicates the pool has begun shutting down
	ErrPoolClosed = api.ErrPoolClosed

	// ErrInvalidWorkerCount indicates invalid worker count configuration
	ErrInvalidWorkerCount = api.ErrInvalidWorkerCount

	// ErrInvalidCapacity indicates a queue was constructed with capacity <= 0
	ErrInvalidCapacity = api.ErrInvalidCapacity

	// ErrNilTask indicates a nil task was submitted
	ErrNilTask = api.ErrNilTask
)
