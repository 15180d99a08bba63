package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// SeedTimeEntry inserts a time entry with sensible defaults, applying any
// mutators first. Returns the inserted entry.
func SeedTimeEntry(t *testing.T, pool *pgxpool.Pool, mutate ...func(*domain.TimeEntry)) domain.TimeEntry {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := domain.TimeEntry{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		ProjectID:       uuid.New(),
		ClientID:        uuid.New(),
		Source:          domain.EntrySourceAuto,
		StartedAt:       now.Add(-time.Hour),
		EndedAt:         now,
		DurationMinutes: 60,
		Status:          domain.EntryStatusApproved,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, m := range mutate {
		m(&e)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO time_entries (id, user_id, project_id, client_id, source,
		     started_at, ended_at, duration_minutes, description, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.UserID, e.ProjectID, e.ClientID, e.Source.String(),
		e.StartedAt, e.EndedAt, e.DurationMinutes, e.Description, e.Status.String(), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTimeEntry insert: %v", err)
	}

	return e
}

// SeedBillingRule inserts a billing rule with sensible defaults, applying
// any mutators first. Returns the inserted rule.
func SeedBillingRule(t *testing.T, pool *pgxpool.Pool, mutate ...func(*domain.BillingRule)) domain.BillingRule {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	r := domain.BillingRule{
		ID:                 uuid.New(),
		ProjectID:          uuid.New(),
		RuleType:           domain.RuleTypeHourly,
		RateCents:          10000,
		Currency:           "USD",
		OvertimeMultiplier: 1.0,
		EffectiveFrom:      now.AddDate(0, -1, 0),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, m := range mutate {
		m(&r)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO billing_rules (id, project_id, rule_type, rate_cents, currency,
		     rounding_increment_minutes, overtime_multiplier, cap_hours, retainer_hours,
		     effective_from, effective_to, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		r.ID, r.ProjectID, r.RuleType.String(), r.RateCents, r.Currency,
		r.RoundingIncrementMinutes, r.OvertimeMultiplier, r.CapHours, r.RetainerHours,
		r.EffectiveFrom, r.EffectiveTo, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBillingRule insert: %v", err)
	}

	return r
}

// SeedInvoice inserts a draft invoice with sensible defaults, applying any
// mutators first. Returns the inserted invoice.
func SeedInvoice(t *testing.T, pool *pgxpool.Pool, mutate ...func(*domain.Invoice)) domain.Invoice {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	inv := domain.Invoice{
		ID:        uuid.New(),
		ClientID:  uuid.New(),
		Number:    "INV-" + uuid.New().String()[:8],
		Currency:  "USD",
		Status:    domain.InvoiceStatusDraft,
		IssueDate: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, m := range mutate {
		m(&inv)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO invoices (id, client_id, project_id, number, currency, status,
		     issue_date, due_date, subtotal_cents, tax_cents, total_cents,
		     period_start, period_end, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		inv.ID, inv.ClientID, inv.ProjectID, inv.Number, inv.Currency, inv.Status.String(),
		inv.IssueDate, inv.DueDate, inv.SubtotalCents, inv.TaxCents, inv.TotalCents,
		inv.PeriodStart, inv.PeriodEnd, inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedInvoice insert: %v", err)
	}

	return inv
}
