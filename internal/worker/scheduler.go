package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs jobs on cron schedules by submitting them to a Pool.
// Jobs therefore share the pool's concurrency bound and retry policy.
type Scheduler struct {
	log  *slog.Logger
	cron *cron.Cron
	pool *Pool
}

// NewScheduler creates a scheduler backed by the given pool.
// Specs use the standard five-field cron format.
func NewScheduler(logger *slog.Logger, pool *Pool) *Scheduler {
	return &Scheduler{
		log:  logger.With("component", "scheduler"),
		cron: cron.New(),
		pool: pool,
	}
}

// Register adds a job on the given cron spec.
func (s *Scheduler) Register(ctx context.Context, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.pool.Submit(ctx, job); err != nil {
			s.log.ErrorContext(ctx, "scheduled job submission failed",
				"job", job.Name,
				"error", err,
			)
		}
	})
	if err != nil {
		return fmt.Errorf("register job %s (spec %q): %w", job.Name, spec, err)
	}

	s.log.InfoContext(ctx, "job scheduled", "job", job.Name, "spec", spec)
	return nil
}

// Start begins firing schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops firing schedules and waits for callbacks in flight.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
