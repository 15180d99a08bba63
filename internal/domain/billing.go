package domain

import (
	"time"

	"github.com/google/uuid"
)

// BillingRule is a date-ranged pricing policy for a project. A rule is
// active at instant t when EffectiveFrom <= t and (EffectiveTo is nil or
// EffectiveTo > t). Overlapping windows are legal; resolution picks the
// rule with the latest EffectiveFrom among matches.
type BillingRule struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	RuleType  RuleType
	RateCents int
	Currency  string
	// RoundingIncrementMinutes rounds billable minutes up to the next
	// multiple; zero disables rounding.
	RoundingIncrementMinutes int
	// OvertimeMultiplier scales the rate for hours beyond CapHours.
	OvertimeMultiplier float64
	CapHours           *float64
	RetainerHours      *float64
	EffectiveFrom      time.Time
	EffectiveTo        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ActiveAt reports whether the rule's effective window contains t.
func (r BillingRule) ActiveAt(t time.Time) bool {
	if t.Before(r.EffectiveFrom) {
		return false
	}
	return r.EffectiveTo == nil || r.EffectiveTo.After(t)
}
