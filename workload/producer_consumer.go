// File: workload/producer_consumer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Paired producers and consumers exchanging integers through one
// BoundedQueue. Every consumer takes exactly its share, so the run ends
// only when every produced item was observed.

package workload

import (
	"context"
	"time"

	"github.com/momentics/speedcore/control"
	"github.com/momentics/speedcore/core/concurrency"
	"golang.org/x/sync/errgroup"
)

// ProducerConsumerName is the Result name of ProducerConsumer.
const ProducerConsumerName = "producer_consumer"

// ProducerConsumer runs cfg.Pairs producers and cfg.Pairs consumers, each
// producer pushing cfg.ItemsPerProducer items. If ctx ends first, blocked
// parties give up and ctx's error is returned.
func ProducerConsumer(ctx context.Context, log *control.Logger, cfg control.QueueConfig) (Result, error) {
	res := Result{Name: ProducerConsumerName}
	q, err := concurrency.NewBoundedQueue[int](cfg.Capacity)
	if err != nil {
		return res, err
	}

	var processed concurrency.Counter
	k := cfg.ItemsPerProducer
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for p := 0; p < cfg.Pairs; p++ {
		p := p
		g.Go(func() error {
			for j := 0; j < k; j++ {
				if err := q.PushContext(gctx, p*k+j); err != nil {
					return err
				}
			}
			return nil
		})
	}
	for c := 0; c < cfg.Pairs; c++ {
		g.Go(func() error {
			for j := 0; j < k; j++ {
				if _, err := q.PopContext(gctx); err != nil {
					return err
				}
				processed.Inc()
			}
			return nil
		})
	}
	err = g.Wait()
	res.Elapsed = time.Since(start)
	res.Processed = processed.Load()
	if err != nil {
		return res, err
	}

	want := int64(cfg.Pairs) * int64(k)
	if res.Processed != want {
		return res, mismatch(res.Name, res.Processed, want)
	}
	log.Debug().
		Str("workload", res.Name).
		Int("pairs", cfg.Pairs).
		Int64("processed", res.Processed).
		Dur("elapsed", res.Elapsed).
		Log("workload finished")
	return res, nil
}
