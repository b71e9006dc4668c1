// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_stub.go) guarded by build tags.

package affinity

import (
	"errors"
	"runtime"
)

// ErrNotSupported is returned on platforms without thread affinity control.
var ErrNotSupported = errors.New("affinity: not supported on this platform")

// SetAffinity pins current OS thread to a given logical CPU/core on supported platforms.
// On unsupported platforms returns ErrNotSupported.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}

// PinWorker locks the calling goroutine to its OS thread and pins that thread
// to CPU (slot mod NumCPU). The goroutine stays locked even if pinning fails,
// so the thread is discarded rather than reused when the goroutine exits.
func PinWorker(slot int) (cpuID int, err error) {
	runtime.LockOSThread()
	cpuID = slot % runtime.NumCPU()
	return cpuID, SetAffinity(cpuID)
}
