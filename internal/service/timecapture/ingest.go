package timecapture

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// IngestSignals runs the heuristic pipeline over one signal batch and
// persists each suggestion as a pending auto-captured time entry.
// A batch that produces no work sessions is not an error; it returns an
// empty slice.
func (s *Service) IngestSignals(ctx context.Context, in IngestInput) ([]domain.TimeEntry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	suggestions := GenerateTimeEntries(in.Signals, s.cfg.IdleThresholdMinutes, s.cfg.MaxMergeIdleMinutes)
	if len(suggestions) == 0 {
		s.log.DebugContext(ctx, "no work sessions detected",
			"user_id", in.UserID,
			"signals", len(in.Signals),
		)
		s.collector.RecordIngestion(len(in.Signals), 0)
		return nil, nil
	}

	now := s.now()
	entries := make([]domain.TimeEntry, 0, len(suggestions))
	for _, sg := range suggestions {
		sgCtx := sg.Context
		entries = append(entries, domain.TimeEntry{
			ID:              uuid.New(),
			UserID:          in.UserID,
			ProjectID:       in.ProjectID,
			ClientID:        in.ClientID,
			Source:          domain.EntrySourceAuto,
			StartedAt:       sg.StartedAt,
			EndedAt:         sg.EndedAt,
			DurationMinutes: durationMinutes(sg),
			Description:     sg.Description,
			Status:          domain.EntryStatusPending,
			Context:         &sgCtx,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	created, err := s.entries.CreateBatch(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("create time entries: %w", err)
	}

	s.collector.RecordIngestion(len(in.Signals), len(created))
	s.log.InfoContext(ctx, "signals ingested",
		"user_id", in.UserID,
		"signals", len(in.Signals),
		"entries_suggested", len(created),
	)
	return created, nil
}

func durationMinutes(sg domain.SuggestedTimeEntry) int {
	return int(math.Round(sg.EndedAt.Sub(sg.StartedAt).Minutes()))
}
