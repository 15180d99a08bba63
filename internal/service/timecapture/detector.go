package timecapture

import (
	"math"
	"sort"
	"time"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// Default thresholds, in minutes.
const (
	DefaultIdleThreshold = 5
	DefaultMaxMergeIdle  = 10
)

// IdleReason explains why a gap counts as idle time.
type IdleReason string

const (
	IdleReasonNoActivity          IdleReason = "no_activity"
	IdleReasonInactivityThreshold IdleReason = "inactivity_threshold"
	IdleReasonManualBreak         IdleReason = "manual_break"
)

// IdlePeriod is a gap between consecutive signals exceeding the idle
// threshold. Derived only, never persisted. End is always after Start.
type IdlePeriod struct {
	Start       time.Time
	End         time.Time
	IdleMinutes int
	Reason      IdleReason
}

// DetectIdlePeriods finds gaps of at least idleThresholdMinutes between
// consecutive signals. Signals are stably sorted by timestamp first, so
// duplicate timestamps keep input order. Returns nil for fewer than two
// signals.
func DetectIdlePeriods(signals []domain.ActivitySignal, idleThresholdMinutes int) []IdlePeriod {
	if len(signals) < 2 {
		return nil
	}

	sorted := sortByTimestamp(signals)

	var periods []IdlePeriod
	for i := 0; i < len(sorted)-1; i++ {
		gap := sorted[i+1].Timestamp.Sub(sorted[i].Timestamp)
		gapMinutes := gap.Minutes()
		if gapMinutes >= float64(idleThresholdMinutes) {
			periods = append(periods, IdlePeriod{
				Start:       sorted[i].Timestamp,
				End:         sorted[i+1].Timestamp,
				IdleMinutes: int(math.Round(gapMinutes)),
				Reason:      IdleReasonInactivityThreshold,
			})
		}
	}

	return periods
}

// FilterIdlePeriods partitions idle periods into those short enough to be
// absorbed into the surrounding session (mergeable) and genuine breaks.
// Brief distractions must not fragment a continuous session, while real
// breaks split it.
func FilterIdlePeriods(periods []IdlePeriod, maxMergeIdleMinutes int) (mergeable, breaks []IdlePeriod) {
	for _, p := range periods {
		if p.IdleMinutes <= maxMergeIdleMinutes {
			mergeable = append(mergeable, p)
		} else {
			breaks = append(breaks, p)
		}
	}
	return mergeable, breaks
}

// sortByTimestamp returns a stably sorted copy; the input is never mutated.
func sortByTimestamp(signals []domain.ActivitySignal) []domain.ActivitySignal {
	sorted := make([]domain.ActivitySignal, len(signals))
	copy(sorted, signals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}
