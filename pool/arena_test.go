package pool_test

import (
	"testing"

	"github.com/momentics/speedcore/api"
	"github.com/momentics/speedcore/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArena_InvalidCapacity(t *testing.T) {
	a, err := pool.NewArena(-1)
	assert.Nil(t, a)
	require.ErrorIs(t, err, api.ErrInvalidCapacity)
}

func TestArena_ExhaustionAndReset(t *testing.T) {
	a, err := pool.NewArena(1024)
	require.NoError(t, err)

	for i := 0; i < 9; i++ {
		r, err := a.Alloc(100)
		require.NoError(t, err, "alloc %d", i+1)
		assert.Equal(t, i*104, r.Offset())
		assert.Equal(t, 100, r.Len())
	}
	assert.Equal(t, 936, a.Used())

	_, err = a.Alloc(100)
	require.ErrorIs(t, err, api.ErrAllocationFailed)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.ErrCodeResourceExhausted, apiErr.Code)
	assert.Equal(t, 88, apiErr.Context["available"])
	assert.Equal(t, 936, a.Used(), "failed alloc must not move the cursor")

	a.Reset()
	r, err := a.Alloc(100)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Offset())
}

func TestArena_AlignmentAndDisjointness(t *testing.T) {
	a, err := pool.NewArena(4096)
	require.NoError(t, err)

	var prevEnd int
	for _, size := range []int{1, 7, 8, 9, 15, 16, 17, 63, 100, 0, 3} {
		r, err := a.Alloc(size)
		require.NoError(t, err)
		assert.Zero(t, r.Offset()%pool.Alignment, "size %d misaligned", size)
		assert.GreaterOrEqual(t, r.Offset(), prevEnd, "size %d overlaps", size)
		prevEnd = r.Offset() + r.Len()

		b, err := r.Bytes()
		require.NoError(t, err)
		assert.Len(t, b, size)
		assert.Equal(t, size, cap(b))
	}
	assert.Zero(t, a.Used()%pool.Alignment)
}

func TestArena_RoundedSizeMustFit(t *testing.T) {
	// 12 bytes of capacity: 8 fit, then a 1-byte request rounds to 8 and does not
	a, err := pool.NewArena(12)
	require.NoError(t, err)
	_, err = a.Alloc(8)
	require.NoError(t, err)
	_, err = a.Alloc(1)
	require.ErrorIs(t, err, api.ErrAllocationFailed)
	assert.Equal(t, 4, a.Available())
}

func TestArena_ZeroCapacity(t *testing.T) {
	a, err := pool.NewArena(0)
	require.NoError(t, err)
	_, err = a.Alloc(1)
	require.ErrorIs(t, err, api.ErrAllocationFailed)
	r, err := a.Alloc(0)
	require.NoError(t, err)
	assert.Zero(t, r.Len())
}

func TestArena_NegativeSize(t *testing.T) {
	a, err := pool.NewArena(64)
	require.NoError(t, err)
	_, err = a.Alloc(-8)
	require.ErrorIs(t, err, api.ErrInvalidArgument)
	assert.Zero(t, a.Used())
}

func TestRegion_StaleAfterReset(t *testing.T) {
	a, err := pool.NewArena(64)
	require.NoError(t, err)

	r, err := a.Alloc(16)
	require.NoError(t, err)
	require.True(t, r.Valid())
	copy(r.MustBytes(), "0123456789abcdef")

	a.Reset()
	assert.False(t, r.Valid())
	_, err = r.Bytes()
	require.ErrorIs(t, err, api.ErrStaleRegion)
	assert.Panics(t, func() { r.MustBytes() })

	// the new owner of the same bytes sees the old contents, unscrubbed
	fresh, err := a.Alloc(16)
	require.NoError(t, err)
	assert.Equal(t, r.Offset(), fresh.Offset())
	assert.Equal(t, "0123456789abcdef", string(fresh.MustBytes()))
}

func TestRegion_ZeroValue(t *testing.T) {
	var r pool.Region
	assert.False(t, r.Valid())
	_, err := r.Bytes()
	require.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestArena_Release(t *testing.T) {
	a, err := pool.NewArena(64)
	require.NoError(t, err)
	r, err := a.Alloc(8)
	require.NoError(t, err)

	a.Release()
	assert.False(t, r.Valid())
	_, err = r.Bytes()
	require.ErrorIs(t, err, api.ErrStaleRegion)
	_, err = a.Alloc(8)
	require.ErrorIs(t, err, api.ErrAllocationFailed)
	assert.Zero(t, a.Capacity())
}

func TestArena_Metrics(t *testing.T) {
	a, err := pool.NewArena(256)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := a.Alloc(60) // 64 each
		require.NoError(t, err)
	}
	_, err = a.Alloc(100)
	require.Error(t, err)
	a.Reset()
	_, err = a.Alloc(10)
	require.NoError(t, err)

	m := a.Metrics()
	assert.Equal(t, pool.ArenaMetrics{
		Capacity:    256,
		Used:        16,
		HighWater:   192,
		Generation:  1,
		Allocations: 4,
		Failed:      1,
		Utilization: 16.0 / 256.0,
	}, m)
}

func TestAllocSlice(t *testing.T) {
	a, err := pool.NewArena(128)
	require.NoError(t, err)

	r, vals, err := pool.AllocSlice[uint64](a, 4)
	require.NoError(t, err)
	require.Len(t, vals, 4)
	assert.Equal(t, 32, r.Len())
	for i := range vals {
		vals[i] = uint64(i) * 3
	}
	again, err := pool.SliceOf[uint64](r, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 3, 6, 9}, again)

	_, err = pool.SliceOf[uint64](r, 5)
	require.ErrorIs(t, err, api.ErrInvalidArgument)

	_, _, err = pool.AllocSlice[float64](a, 100)
	require.ErrorIs(t, err, api.ErrAllocationFailed)

	a.Reset()
	_, err = pool.SliceOf[uint64](r, 1)
	require.ErrorIs(t, err, api.ErrStaleRegion)
}

func BenchmarkArena_Alloc128(b *testing.B) {
	a, err := pool.NewArena(1 << 20)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		if _, err := a.Alloc(128); err != nil {
			a.Reset()
		}
	}
}
