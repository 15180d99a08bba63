// Package billing turns approved time entries into invoice line items and
// exact monetary totals. Rule resolution and line-item math are pure
// functions; the Service type owns the transactional orchestration around
// them.
package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// ResolveActiveRule selects the billing rule for a project at a point in
// time: among rules whose effective window contains the instant, the one
// with the latest EffectiveFrom wins (deliberate tie-break for overlapping
// windows, not an error condition).
//
// Returns nil when nothing matches. Callers must treat nil as "bill at
// zero rate", never as a failure.
func ResolveActiveRule(rules []domain.BillingRule, projectID uuid.UUID, at time.Time) *domain.BillingRule {
	var active *domain.BillingRule
	for i := range rules {
		r := &rules[i]
		if r.ProjectID != projectID || !r.ActiveAt(at) {
			continue
		}
		if active == nil || r.EffectiveFrom.After(active.EffectiveFrom) {
			active = r
		}
	}

	if active == nil {
		return nil
	}
	// Copy so callers can't mutate the input slice through the result.
	rule := *active
	return &rule
}
