// File: workload/thread_pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package workload

import (
	"context"
	"runtime"
	"time"

	"github.com/momentics/speedcore/control"
	"github.com/momentics/speedcore/core/concurrency"
)

// ThreadPoolName is the Result name of ThreadPool.
const ThreadPoolName = "thread_pool"

// ThreadPool submits cfg.Tasks CPU-plus-sleep tasks to a WorkerPool and
// waits for all of them through Shutdown. Zero cfg.Workers means one worker
// per GOMAXPROCS.
func ThreadPool(ctx context.Context, log *control.Logger, cfg control.PoolConfig) (Result, error) {
	res := Result{Name: ThreadPoolName}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p, err := concurrency.NewWorkerPool(workers,
		concurrency.WithName(ThreadPoolName),
		concurrency.WithLogger(log),
		concurrency.WithCPUPinning(cfg.PinWorkers),
	)
	if err != nil {
		return res, err
	}

	var completed concurrency.Counter
	iterations := cfg.SpinIterations
	sleep := time.Duration(cfg.TaskSleep)
	task := func() {
		spin(iterations)
		if sleep > 0 {
			time.Sleep(sleep)
		}
		completed.Inc()
	}

	start := time.Now()
	for i := 0; i < cfg.Tasks; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = p.Submit(task); err != nil {
			break
		}
	}
	// Accepted tasks drain even when submission stopped early.
	if serr := p.ShutdownContext(ctx); err == nil {
		err = serr
	}
	res.Elapsed = time.Since(start)
	res.Processed = completed.Load()
	if err != nil {
		return res, err
	}

	if want := int64(cfg.Tasks); res.Processed != want {
		return res, mismatch(res.Name, res.Processed, want)
	}
	st := p.Stats()
	log.Debug().
		Str("workload", res.Name).
		Int("workers", st.Workers).
		Uint64("submitted", st.Submitted).
		Uint64("completed", st.Completed).
		Uint64("panicked", st.Panicked).
		Dur("elapsed", res.Elapsed).
		Log("workload finished")
	return res, nil
}

// spin burns CPU for n iterations of a sum of squares.
func spin(n int) int64 {
	var work int64
	for j := 0; j < n; j++ {
		work += int64(j) * int64(j)
	}
	return work
}
