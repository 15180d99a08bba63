package timecapture

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// DailyTotals returns per-user aggregated entry counts and minutes for
// the UTC day containing the given instant. The aggregation runs in SQL.
func (s *Service) DailyTotals(ctx context.Context, day time.Time) ([]domain.DailyEntryTotal, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	totals, err := s.entries.DailyTotals(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("daily totals for %s: %w", dayStart.Format(time.DateOnly), err)
	}
	return totals, nil
}
