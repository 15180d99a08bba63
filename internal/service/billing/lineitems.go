package billing

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

const defaultLineDescription = "Work"

// RoundUpToIncrement rounds minutes up to the next multiple of the
// increment. A zero or absent increment is a no-op. Idempotent:
// applying it twice equals applying it once.
func RoundUpToIncrement(minutes, incrementMinutes int) int {
	if incrementMinutes <= 0 {
		return minutes
	}
	return ((minutes + incrementMinutes - 1) / incrementMinutes) * incrementMinutes
}

// roundHalfUpCents rounds a fractional cent amount half-up to an integer.
func roundHalfUpCents(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ComputeLineItems prices approved time entries under a resolved billing
// rule and returns the line items plus the exact integer subtotal.
//
// Entries are processed in StartedAt ascending order so output is stable
// and reproducible. Each entry yields exactly one line item (no merging —
// one entry, one line, for auditability) carrying a snapshot of the rule
// applied. A nil rule bills everything at zero rate.
//
// When the rule caps hours, cumulative billable hours beyond CapHours are
// priced at RateCents × OvertimeMultiplier; an entry straddling the cap
// boundary splits its hours across both prices within its single line
// item, rounded once. RetainerHours is intentionally not applied here
// (it needs cross-invoice billing-period state).
//
// The subtotal is the integer sum of the per-line amounts. Summing
// already-rounded cents avoids compounding rounding error across entries.
func ComputeLineItems(invoiceID uuid.UUID, entries []domain.TimeEntry, rule *domain.BillingRule) ([]domain.InvoiceLineItem, int, error) {
	if err := validateRule(rule); err != nil {
		return nil, 0, err
	}

	rateCents := 0
	increment := 0
	multiplier := 1.0
	var capHours *float64
	snapshot := domain.RuleSnapshot{}
	if rule != nil {
		rateCents = rule.RateCents
		increment = rule.RoundingIncrementMinutes
		if rule.OvertimeMultiplier > 1 {
			multiplier = rule.OvertimeMultiplier
		}
		capHours = rule.CapHours
		ruleID := rule.ID
		ruleType := rule.RuleType
		snapshot = domain.RuleSnapshot{
			RuleID:           &ruleID,
			RuleType:         &ruleType,
			RateCents:        rateCents,
			IncrementMinutes: increment,
		}
	}

	ordered := make([]domain.TimeEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartedAt.Before(ordered[j].StartedAt)
	})

	items := make([]domain.InvoiceLineItem, 0, len(ordered))
	subtotalCents := 0
	cumulativeHours := 0.0

	for _, entry := range ordered {
		billableMinutes := RoundUpToIncrement(entry.DurationMinutes, increment)
		quantityHours := float64(billableMinutes) / 60.0

		regularHours := quantityHours
		overtimeHours := 0.0
		if capHours != nil {
			remaining := *capHours - cumulativeHours
			if remaining < 0 {
				remaining = 0
			}
			if quantityHours > remaining {
				regularHours = remaining
				overtimeHours = quantityHours - remaining
			}
		}
		cumulativeHours += quantityHours

		amountCents := roundHalfUpCents(regularHours*float64(rateCents) + overtimeHours*float64(rateCents)*multiplier)

		description := defaultLineDescription
		if entry.Description != nil && *entry.Description != "" {
			description = *entry.Description
		}

		entryID := entry.ID
		items = append(items, domain.InvoiceLineItem{
			InvoiceID:      invoiceID,
			TimeEntryID:    &entryID,
			Description:    description,
			QuantityHours:  quantityHours,
			UnitPriceCents: rateCents,
			AmountCents:    amountCents,
			RuleSnapshot:   snapshot,
		})
		subtotalCents += amountCents
	}

	return items, subtotalCents, nil
}

// validateRule fails fast on malformed pricing inputs.
func validateRule(rule *domain.BillingRule) error {
	if rule == nil {
		return nil
	}
	if rule.RateCents < 0 {
		return fmt.Errorf("billing rule %s: %w: rate_cents must be >= 0 (got %d)",
			rule.ID, domain.ErrValidation, rule.RateCents)
	}
	if rule.RoundingIncrementMinutes < 0 {
		return fmt.Errorf("billing rule %s: %w: rounding_increment_minutes must be >= 0 (got %d)",
			rule.ID, domain.ErrValidation, rule.RoundingIncrementMinutes)
	}
	if rule.OvertimeMultiplier != 0 && rule.OvertimeMultiplier < 1 {
		return fmt.Errorf("billing rule %s: %w: overtime_multiplier must be >= 1 (got %v)",
			rule.ID, domain.ErrValidation, rule.OvertimeMultiplier)
	}
	return nil
}
