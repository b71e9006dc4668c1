// File: core/concurrency/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// WorkerPool runs submitted tasks on a fixed roster of worker goroutines that
// drain a shared unbounded FIFO. Submit never blocks; Shutdown drains every
// accepted task, then joins all workers.

package concurrency

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/momentics/speedcore/affinity"
	"github.com/momentics/speedcore/api"
)

// TaskFunc is a unit of work to execute.
type TaskFunc func()

var _ api.Executor = (*WorkerPool)(nil)

// WorkerPool manages a fixed set of worker goroutines.
type WorkerPool struct {
	mu     sync.Mutex
	cond   sync.Cond    // signalled on submit, broadcast on shutdown
	tasks  *queue.Queue // of TaskFunc, guarded by mu
	closed bool         // guarded by mu, never reverts

	config     poolConfig
	numWorkers int
	wg         sync.WaitGroup
	exited     chan struct{} // closed once every worker has returned
	closeOnce  sync.Once

	// statistics
	submitted atomic.Uint64
	completed atomic.Uint64
	panicked  atomic.Uint64
	rejected  atomic.Uint64
}

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	Workers   int
	Pending   int
	Submitted uint64
	Completed uint64
	Panicked  uint64
	Rejected  uint64
}

// NewWorkerPool starts numWorkers workers. They run until Shutdown.
func NewWorkerPool(numWorkers int, opts ...Option) (*WorkerPool, error) {
	if numWorkers <= 0 {
		return nil, api.WrapError(api.ErrCodeInvalidArgument, api.ErrInvalidWorkerCount).
			WithContext("workers", numWorkers)
	}
	p := &WorkerPool{
		tasks:      queue.New(),
		config:     defaultPoolConfig(),
		numWorkers: numWorkers,
		exited:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(&p.config)
	}
	p.cond.L = &p.mu

	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.work(i)
	}
	go func() {
		p.wg.Wait()
		close(p.exited)
	}()
	return p, nil
}

// Submit enqueues task for execution, returning ErrPoolClosed if shutdown has
// begun. An accepted task always runs exactly once before Shutdown returns.
func (p *WorkerPool) Submit(task func()) error {
	if task == nil {
		return ErrNilTask
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.rejected.Add(1)
		return ErrPoolClosed
	}
	p.tasks.Add(TaskFunc(task))
	p.cond.Signal()
	p.mu.Unlock()
	p.submitted.Add(1)
	return nil
}

// SubmitAwait enqueues task and returns a Handle reporting its outcome. A
// panic inside task is contained and surfaced as *api.TaskPanicError.
func (p *WorkerPool) SubmitAwait(task func() error) (*Handle, error) {
	if task == nil {
		return nil, ErrNilTask
	}
	h := newHandle()
	err := p.Submit(func() {
		if h.run(task) {
			p.panicked.Add(1)
			p.config.logger.Err().
				Str("pool", p.config.name).
				Str("task", h.id).
				Err(h.err).
				Log("task panicked")
		}
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Shutdown stops accepting tasks, waits for the queue to drain and for every
// worker to exit. It is idempotent; later calls return once the pool is down.
// Calling it from inside a task deadlocks.
func (p *WorkerPool) Shutdown() {
	p.initiateShutdown()
	<-p.exited
}

// ShutdownContext is Shutdown that stops waiting when ctx is done. Workers
// keep draining in the background; a later Shutdown waits for them.
func (p *WorkerPool) ShutdownContext(ctx context.Context) error {
	p.initiateShutdown()
	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *WorkerPool) initiateShutdown() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.cond.Broadcast()
		p.mu.Unlock()
	})
}

// Done is closed once the pool has fully shut down.
func (p *WorkerPool) Done() <-chan struct{} {
	return p.exited
}

// NumWorkers returns the fixed worker count.
func (p *WorkerPool) NumWorkers() int {
	return p.numWorkers
}

// Stats returns basic pool metrics.
func (p *WorkerPool) Stats() Stats {
	p.mu.Lock()
	pending := p.tasks.Length()
	p.mu.Unlock()
	return Stats{
		Workers:   p.numWorkers,
		Pending:   pending,
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
		Rejected:  p.rejected.Load(),
	}
}

// work is the main loop for one worker.
func (p *WorkerPool) work(id int) {
	defer p.wg.Done()
	log := p.config.logger

	if p.config.pinWorkers {
		if cpuID, err := affinity.PinWorker(id); err != nil {
			log.Warning().
				Str("pool", p.config.name).
				Int("worker", id).
				Int("cpu", cpuID).
				Err(err).
				Log("worker pinning failed")
		}
	}
	log.Debug().Str("pool", p.config.name).Int("worker", id).Log("worker started")

	for {
		task, ok := p.next()
		if !ok {
			log.Debug().Str("pool", p.config.name).Int("worker", id).Log("worker exited")
			return
		}
		p.execute(id, task)
	}
}

// next blocks until a task is available or the pool is closed and drained.
func (p *WorkerPool) next() (TaskFunc, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.tasks.Length() == 0 && !p.closed {
		p.cond.Wait()
	}
	if p.tasks.Length() == 0 {
		return nil, false
	}
	task := p.tasks.Peek().(TaskFunc)
	p.tasks.Remove()
	return task, true
}

// execute runs the task, recovering from panics so the worker survives.
func (p *WorkerPool) execute(id int, task TaskFunc) {
	defer func() {
		if r := recover(); r != nil {
			p.panicked.Add(1)
			p.config.logger.Err().
				Str("pool", p.config.name).
				Int("worker", id).
				Any("panic", r).
				Str("stack", string(debug.Stack())).
				Log("task panicked")
			if p.config.panicHandler != nil {
				p.config.panicHandler(id, r)
			}
		}
		p.completed.Add(1)
	}()
	task()
}
