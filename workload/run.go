// File: workload/run.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package workload

import (
	"context"

	"github.com/momentics/speedcore/control"
)

// RunAll runs every workload in order and records each Result in mr under
// its name. It stops at the first failure; results gathered so far are
// returned alongside the error.
func RunAll(ctx context.Context, log *control.Logger, cfg control.Config, mr *control.MetricsRegistry) ([]Result, error) {
	steps := []func() (Result, error){
		func() (Result, error) { return ProducerConsumer(ctx, log, cfg.Queue) },
		func() (Result, error) { return ThreadPool(ctx, log, cfg.Pool) },
		func() (Result, error) { return ArenaBatches(log, cfg.Arena) },
	}
	results := make([]Result, 0, len(steps))
	for _, step := range steps {
		res, err := step()
		if err != nil {
			log.Err().Str("workload", res.Name).Err(err).Log("workload failed")
			return results, err
		}
		if mr != nil {
			mr.Set(res.Name, res)
		}
		log.Info().
			Str("workload", res.Name).
			Int64("processed", res.Processed).
			Float64("elapsed_ms", res.Millis()).
			Log("workload complete")
		results = append(results, res)
	}
	return results, nil
}
