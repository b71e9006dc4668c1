// File: pool/region.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"github.com/momentics/speedcore/api"
)

// Region is a handle to bytes [Offset, Offset+Len) of an Arena. It is bound
// to the arena generation it was allocated in; once the arena is reset or
// released, every accessor reports api.ErrStaleRegion instead of exposing
// memory that now belongs to someone else.
//
// A slice obtained from Bytes before the reset is not tracked: holding on to
// it across Reset is a contract violation the arena cannot detect.
type Region struct {
	arena *Arena
	gen   uint64
	off   int
	n     int
}

// Offset returns the start of the region within the arena buffer.
func (r Region) Offset() int { return r.off }

// Len returns the requested size.
func (r Region) Len() int { return r.n }

// Valid reports whether the region is still usable.
func (r Region) Valid() bool {
	return r.arena != nil && !r.arena.released && r.arena.gen == r.gen
}

// Bytes returns the region's memory. Its capacity equals Len, so appending
// never spills into a neighbouring region.
func (r Region) Bytes() ([]byte, error) {
	if r.arena == nil {
		return nil, api.WrapError(api.ErrCodeInvalidArgument, api.ErrInvalidArgument).
			WithContext("region", "zero value")
	}
	if !r.Valid() {
		return nil, api.WrapError(api.ErrCodeStale, api.ErrStaleRegion).
			WithContext("region_generation", r.gen).
			WithContext("arena_generation", r.arena.gen)
	}
	end := r.off + r.n
	return r.arena.buf[r.off:end:end], nil
}

// MustBytes is Bytes for callers that treat a stale region as a bug.
func (r Region) MustBytes() []byte {
	b, err := r.Bytes()
	if err != nil {
		panic(err)
	}
	return b
}
