//go:build !linux

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>

package affinity

func setAffinityPlatform(int) error {
	return ErrNotSupported
}
