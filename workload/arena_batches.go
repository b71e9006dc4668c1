// File: workload/arena_batches.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Batch allocation over a single Arena: one full pass of Iterations blocks,
// then Batches smaller passes, resetting between passes instead of freeing
// individual blocks.

package workload

import (
	"time"

	"github.com/momentics/speedcore/api"
	"github.com/momentics/speedcore/control"
	"github.com/momentics/speedcore/pool"
)

// ArenaBatchesName is the Result name of ArenaBatches.
const ArenaBatchesName = "arena_batches"

// arenaSlack is extra room beyond the full pass.
const arenaSlack = 1024

// ArenaBatches allocates and fills blocks of cfg.BlockSize bytes. Processed
// counts every successful allocation.
func ArenaBatches(log *control.Logger, cfg control.ArenaConfig) (Result, error) {
	res := Result{Name: ArenaBatchesName}
	if cfg.Batches <= 0 || cfg.BlockSize <= 0 {
		return res, api.WrapError(api.ErrCodeInvalidArgument, api.ErrInvalidArgument).
			WithContext("batches", cfg.Batches).
			WithContext("block_size", cfg.BlockSize)
	}
	block := (cfg.BlockSize + pool.Alignment - 1) &^ (pool.Alignment - 1)
	a, err := pool.NewArena(cfg.Iterations*block + arenaSlack)
	if err != nil {
		return res, err
	}
	defer a.Release()

	start := time.Now()
	n, err := fillPass(a, cfg.Iterations, cfg.BlockSize)
	res.Processed += n
	if err != nil {
		res.Elapsed = time.Since(start)
		return res, err
	}
	full := a.Metrics()
	a.Reset()

	per := cfg.Iterations / cfg.Batches
	for b := 0; b < cfg.Batches; b++ {
		n, err = fillPass(a, per, cfg.BlockSize)
		res.Processed += n
		if err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}
		a.Reset()
	}
	res.Elapsed = time.Since(start)

	if want := int64(cfg.Iterations + per*cfg.Batches); res.Processed != want {
		return res, mismatch(res.Name, res.Processed, want)
	}
	m := a.Metrics()
	log.Debug().
		Str("workload", res.Name).
		Int("capacity", m.Capacity).
		Int("high_water", m.HighWater).
		Float64("full_pass_utilization", full.Utilization).
		Uint64("generation", m.Generation).
		Uint64("allocations", m.Allocations).
		Dur("elapsed", res.Elapsed).
		Log("workload finished")
	return res, nil
}

// fillPass allocates count blocks and stamps each with its index. Blocks
// that hold whole words are written through a typed view.
func fillPass(a *pool.Arena, count, size int) (int64, error) {
	words := size / 8
	var done int64
	for i := 0; i < count; i++ {
		r, err := a.Alloc(size)
		if err != nil {
			return done, err
		}
		if words*8 == size {
			ws, err := pool.SliceOf[uint64](r, words)
			if err != nil {
				return done, err
			}
			stamp := uint64(i&0xFF) * 0x0101010101010101
			for j := range ws {
				ws[j] = stamp
			}
		} else {
			bs, err := r.Bytes()
			if err != nil {
				return done, err
			}
			for j := range bs {
				bs[j] = byte(i & 0xFF)
			}
		}
		done++
	}
	return done, nil
}
