package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/billops-backend/internal/adapter/postgres"
	entryrepo "github.com/heartmarshall/billops-backend/internal/adapter/postgres/entry"
	"github.com/heartmarshall/billops-backend/internal/config"
	"github.com/heartmarshall/billops-backend/internal/service/analytics"
	"github.com/heartmarshall/billops-backend/internal/service/timecapture"
	"github.com/heartmarshall/billops-backend/internal/worker"
	"github.com/heartmarshall/billops-backend/pkg/ctxutil"
)

// Run is the application entry point. It loads configuration, connects
// to the database, wires repositories and services, starts the worker
// pool and scheduler, and blocks until ctx is canceled. Shutdown drains
// in-flight jobs.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	applied, err := Migrate(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if applied > 0 {
		logger.Info("schema migrations applied", slog.Int("count", applied))
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	entries := entryrepo.New(pool)
	collector := analytics.NewCollector()

	captureService := timecapture.NewService(logger, entries, collector, timecapture.Config{
		IdleThresholdMinutes: cfg.Capture.IdleThresholdMinutes,
		MaxMergeIdleMinutes:  cfg.Capture.MaxMergeIdleMinutes,
	})

	retry := worker.RetryPolicy{
		MaxAttempts: cfg.Worker.MaxAttempts,
		Backoff:     cfg.Worker.RetryBackoff,
	}
	jobPool := worker.NewPool(logger, cfg.Worker.PoolSize, cfg.Worker.QueueSize, retry)
	jobPool.Start(ctx)

	scheduler := worker.NewScheduler(logger, jobPool)
	err = scheduler.Register(ctx, cfg.Worker.DailyAggregationSpec, worker.Job{
		Name: "daily-entry-totals",
		Run: func(jobCtx context.Context) error {
			day := time.Now().UTC().AddDate(0, 0, -1)
			jobCtx = ctxutil.WithJobID(jobCtx, "daily-entry-totals-"+day.Format(time.DateOnly))

			totals, err := captureService.DailyTotals(jobCtx, day)
			if err != nil {
				return err
			}
			for _, t := range totals {
				logger.InfoContext(jobCtx, "daily entry total",
					slog.String("user_id", t.UserID.String()),
					slog.Time("day", t.Day),
					slog.Int("entries", t.EntryCount),
					slog.Int("minutes", t.TotalMinutes),
				)
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	scheduler.Start()

	logger.Info("application started",
		slog.Int("workers", cfg.Worker.PoolSize),
		slog.String("daily_aggregation_spec", cfg.Worker.DailyAggregationSpec),
	)

	<-ctx.Done()
	logger.Info("shutting down")

	scheduler.Stop()

	drained := make(chan struct{})
	go func() {
		jobPool.Shutdown()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(cfg.Worker.ShutdownTimeout):
		logger.Warn("shutdown timeout exceeded, abandoning in-flight jobs")
	}

	s := collector.Snapshot()
	logger.Info("pipeline counters at shutdown",
		slog.Int64("signals_ingested", s.SignalsIngested),
		slog.Int64("entries_suggested", s.EntriesSuggested),
		slog.Int64("invoices_generated", s.InvoicesGenerated),
		slog.Int64("cents_billed", s.CentsBilled),
	)

	return nil
}
