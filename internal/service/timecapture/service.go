package timecapture

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
	"github.com/heartmarshall/billops-backend/internal/service/analytics"
)

type entryRepo interface {
	CreateBatch(ctx context.Context, entries []domain.TimeEntry) ([]domain.TimeEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.EntryStatus) (bool, error)
	DailyTotals(ctx context.Context, dayStart, dayEnd time.Time) ([]domain.DailyEntryTotal, error)
}

// Config holds the heuristic thresholds, in minutes.
type Config struct {
	IdleThresholdMinutes int
	MaxMergeIdleMinutes  int
}

// Service orchestrates the capture pipeline: it runs the pure heuristics
// over ingested signal batches and persists the suggestions as pending
// time entries, and it owns the pending→approved/rejected review
// transitions.
type Service struct {
	entries   entryRepo
	collector *analytics.Collector
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a time-capture service. Zero thresholds in cfg fall
// back to the package defaults.
func NewService(
	log *slog.Logger,
	entries entryRepo,
	collector *analytics.Collector,
	cfg Config,
) *Service {
	if cfg.IdleThresholdMinutes <= 0 {
		cfg.IdleThresholdMinutes = DefaultIdleThreshold
	}
	if cfg.MaxMergeIdleMinutes <= 0 {
		cfg.MaxMergeIdleMinutes = DefaultMaxMergeIdle
	}
	return &Service{
		entries:   entries,
		collector: collector,
		cfg:       cfg,
		log:       log.With("service", "timecapture"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}
