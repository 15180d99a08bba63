package timecapture

import (
	"strings"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// Confidence weights per dominant activity type. The product of session
// consistency and the dominant type's weight is the entry confidence.
const (
	focusedWorkWeight   = 0.9
	meetingWeight       = 0.85
	researchWeight      = 0.75
	communicationWeight = 0.7

	// UncertainThreshold is both the default weight for low-trust activity
	// types and the confidence floor below which entries require review.
	UncertainThreshold = 0.5
)

var typeWeights = map[domain.ActivityType]float64{
	domain.ActivityTypeFocusedWork:   focusedWorkWeight,
	domain.ActivityTypeMeeting:       meetingWeight,
	domain.ActivityTypeResearch:      researchWeight,
	domain.ActivityTypeCommunication: communicationWeight,
}

// GroupActivities partitions a signal stream into work sessions.
//
// Non-work signals are dropped first. Breaks come from the idle detector;
// a signal falls inside a break iff break.Start < ts <= break.End. Such a
// signal flushes the current group and starts the next one — the break's
// left endpoint closes the old session, its right endpoint opens the new
// one, and no signal is ever dropped or duplicated.
func GroupActivities(signals []domain.ActivitySignal, idleThresholdMinutes, maxMergeIdleMinutes int) [][]domain.ActivitySignal {
	if len(signals) == 0 {
		return nil
	}

	var work []domain.ActivitySignal
	for _, sig := range signals {
		if IsWorkRelated(sig) {
			work = append(work, sig)
		}
	}
	if len(work) == 0 {
		return nil
	}
	work = sortByTimestamp(work)

	idle := DetectIdlePeriods(work, idleThresholdMinutes)
	_, breaks := FilterIdlePeriods(idle, maxMergeIdleMinutes)

	var groups [][]domain.ActivitySignal
	var current []domain.ActivitySignal

	for _, sig := range work {
		if inBreak(sig, breaks) && len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, sig)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}

func inBreak(sig domain.ActivitySignal, breaks []IdlePeriod) bool {
	for _, b := range breaks {
		if sig.Timestamp.After(b.Start) && !sig.Timestamp.After(b.End) {
			return true
		}
	}
	return false
}

// CalculateConfidence scores a group of signals in [0,1]: the share of the
// dominant activity type (1.0 for a homogeneous group) multiplied by that
// type's trust weight.
func CalculateConfidence(signals []domain.ActivitySignal) float64 {
	if len(signals) == 0 {
		return 0
	}

	counts := make(map[domain.ActivityType]int)
	var order []domain.ActivityType
	for _, sig := range signals {
		at := Classify(sig)
		if _, seen := counts[at]; !seen {
			order = append(order, at)
		}
		counts[at]++
	}

	dominant := order[0]
	for _, at := range order[1:] {
		if counts[at] > counts[dominant] {
			dominant = at
		}
	}

	consistency := 1.0
	if len(counts) > 1 {
		consistency = float64(counts[dominant]) / float64(len(signals))
	}

	weight, ok := typeWeights[dominant]
	if !ok {
		weight = UncertainThreshold
	}

	return consistency * weight
}

// CreateSuggestedEntry synthesizes a suggested time entry from one group
// of signals. Returns nil for an empty group.
func CreateSuggestedEntry(signals []domain.ActivitySignal) *domain.SuggestedTimeEntry {
	if len(signals) == 0 {
		return nil
	}

	sorted := sortByTimestamp(signals)

	confidence := CalculateConfidence(sorted)
	ctx := ContextData(sorted)

	activityType := domain.ActivityTypeFocusedWork
	if ctx.PrimaryActivity != nil {
		activityType = domain.ActivityType(*ctx.PrimaryActivity)
	}

	return &domain.SuggestedTimeEntry{
		StartedAt:    sorted[0].Timestamp,
		EndedAt:      sorted[len(sorted)-1].Timestamp,
		ActivityType: activityType,
		Confidence:   confidence,
		Context:      ctx,
		Description:  describe(ctx),
		ShouldVerify: confidence < UncertainThreshold,
	}
}

// describe builds "{primary}: {first 3 distinct apps}", or just the
// primary activity when no applications were recorded.
func describe(ctx domain.EntryContext) *string {
	if ctx.PrimaryActivity == nil {
		return nil
	}

	if len(ctx.Applications) == 0 {
		d := *ctx.PrimaryActivity
		return &d
	}

	apps := ctx.Applications
	if len(apps) > 3 {
		apps = apps[:3]
	}
	d := *ctx.PrimaryActivity + ": " + strings.Join(apps, ", ")
	return &d
}

// GenerateTimeEntries is the full heuristic pipeline: group the signal
// stream, then create one suggested entry per group. Groups that yield no
// entry are skipped (defensive; post-grouping groups are never empty).
func GenerateTimeEntries(signals []domain.ActivitySignal, idleThresholdMinutes, maxMergeIdleMinutes int) []domain.SuggestedTimeEntry {
	groups := GroupActivities(signals, idleThresholdMinutes, maxMergeIdleMinutes)

	var entries []domain.SuggestedTimeEntry
	for _, group := range groups {
		if entry := CreateSuggestedEntry(group); entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries
}
