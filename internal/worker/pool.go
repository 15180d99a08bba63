// Package worker provides the in-process background job machinery:
// a bounded worker pool with per-job retry, and a cron scheduler for
// periodic jobs.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Job is a unit of background work. A Job must respect ctx cancellation;
// returning an error triggers the pool's retry policy.
type Job struct {
	// Name identifies the job in logs.
	Name string
	// Run does the work.
	Run func(ctx context.Context) error
}

// Pool runs submitted jobs on a fixed number of goroutines.
type Pool struct {
	log     *slog.Logger
	retry   RetryPolicy
	workers int
	jobs    chan Job
	wg      sync.WaitGroup

	mu      sync.Mutex
	started bool
}

// NewPool creates a pool with the given worker count and queue size.
func NewPool(logger *slog.Logger, workers, queueSize int, retry RetryPolicy) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	return &Pool{
		log:     logger.With("component", "worker_pool"),
		retry:   retry,
		workers: workers,
		jobs:    make(chan Job, queueSize),
	}
}

// Start launches the worker goroutines. Canceling ctx stops intake via
// Submit, but workers keep draining the queue until Shutdown closes it:
// a job that was accepted runs even when the run context dies first.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	// Detach job execution from the run context so already queued jobs
	// survive its cancellation; context values (log fields, job ids)
	// carry over.
	run := context.WithoutCancel(ctx)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.runWithRetry(run, job)
			}
		}()
	}
}

// Submit enqueues a job. Blocks while the queue is full; returns an
// error when ctx is canceled first.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("submit job %s: %w", job.Name, ctx.Err())
	case p.jobs <- job:
		return nil
	}
}

// Shutdown closes the queue and waits for queued and in-flight jobs to
// finish. Must not be called concurrently with Submit.
func (p *Pool) Shutdown() {
	close(p.jobs)
	p.wg.Wait()
}

func (p *Pool) runWithRetry(ctx context.Context, job Job) {
	err := p.retry.Do(ctx, func(ctx context.Context) error {
		return job.Run(ctx)
	})
	if err != nil {
		p.log.ErrorContext(ctx, "job failed after retries",
			"job", job.Name,
			"error", err,
		)
		return
	}
	p.log.DebugContext(ctx, "job completed", "job", job.Name)
}
