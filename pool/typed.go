// File: pool/typed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Typed views over arena memory. Restricted to pointer-free scalar element
// types, since the garbage collector does not scan arena bytes.

package pool

import (
	"unsafe"

	"github.com/momentics/speedcore/api"
)

// Scalar is the set of element types that may live in arena memory.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// SliceOf reinterprets the first n elements of r as a []T.
// The view is subject to the same staleness rules as Region.Bytes.
func SliceOf[T Scalar](r Region, n int) ([]T, error) {
	b, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if n < 0 || n > len(b)/size {
		return nil, api.WrapError(api.ErrCodeInvalidArgument, api.ErrInvalidArgument).
			WithContext("elements", n).
			WithContext("region_bytes", len(b))
	}
	if n == 0 {
		return nil, nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// AllocSlice allocates room for n elements of T and returns both the region
// and its typed view. The elements are not zeroed.
func AllocSlice[T Scalar](a *Arena, n int) (Region, []T, error) {
	if n < 0 {
		return Region{}, nil, api.WrapError(api.ErrCodeInvalidArgument, api.ErrInvalidArgument).
			WithContext("elements", n)
	}
	var zero T
	r, err := a.Alloc(n * int(unsafe.Sizeof(zero)))
	if err != nil {
		return Region{}, nil, err
	}
	s, err := SliceOf[T](r, n)
	if err != nil {
		return Region{}, nil, err
	}
	return r, s, nil
}
