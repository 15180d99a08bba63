package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryContext is the structured activity context captured with an
// auto-suggested time entry. Applications and Domains are sorted and
// de-duplicated at creation time. Persisted as a jsonb document.
type EntryContext struct {
	Applications []string `json:"applications,omitempty"`
	Domains      []string `json:"domains,omitempty"`
	// ActivityDistribution is a histogram of classified activity types
	// over the signals that formed the entry.
	ActivityDistribution map[string]int `json:"activity_distribution,omitempty"`
	// PrimaryActivity is the histogram mode; ties break by first appearance.
	PrimaryActivity *string `json:"primary_activity,omitempty"`
}

// SuggestedTimeEntry is the heuristic pipeline's output: a candidate work
// session awaiting review. Never mutated after creation; the orchestration
// layer persists it as a pending TimeEntry.
type SuggestedTimeEntry struct {
	StartedAt    time.Time
	EndedAt      time.Time
	ActivityType ActivityType
	// Confidence is in [0,1]: session consistency times the dominant
	// activity type's trust weight.
	Confidence  float64
	Context     EntryContext
	Description *string
	// ShouldVerify marks entries below the uncertainty threshold for
	// mandatory human review.
	ShouldVerify bool
}

// TimeEntry is a unit of (potentially) billable work.
type TimeEntry struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ProjectID       uuid.UUID
	ClientID        uuid.UUID
	BillingRuleID   *uuid.UUID
	Source          EntrySource
	StartedAt       time.Time
	EndedAt         time.Time
	DurationMinutes int
	Description     *string
	Status          EntryStatus
	Context         *EntryContext
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DailyEntryTotal holds aggregated per-user per-day entry totals,
// computed in SQL.
type DailyEntryTotal struct {
	UserID       uuid.UUID
	Day          time.Time
	EntryCount   int
	TotalMinutes int
}
