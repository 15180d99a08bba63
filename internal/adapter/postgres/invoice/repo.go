// Package invoice implements the invoice repository using PostgreSQL.
// It stores invoices, their line items, and the rule snapshots frozen at
// generation time.
package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/billops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/billops-backend/internal/domain"
)

const invoiceColumns = `id, client_id, project_id, number, currency, status,
	issue_date, due_date, subtotal_cents, tax_cents, total_cents,
	period_start, period_end, notes, created_at, updated_at`

const lineItemColumns = `id, invoice_id, time_entry_id, description,
	quantity_hours, unit_price_cents, amount_cents,
	rule_id, rule_type, rule_rate_cents, rule_increment_minutes`

// Repo provides invoice persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new invoice repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an invoice by primary key.
// Returns domain.ErrNotFound if the invoice does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		return nil, mapError(err, "invoice", id)
	}
	return inv, nil
}

// ListLineItems returns an invoice's line items in the order the
// generation run produced them (the persisted position, not insertion
// timestamps, which are identical across one batch).
func (r *Repo) ListLineItems(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceLineItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT `+lineItemColumns+` FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY position ASC, id ASC`,
		invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice_line_items: %w", err)
	}
	defer rows.Close()

	items := []domain.InvoiceLineItem{}
	for rows.Next() {
		var (
			li       domain.InvoiceLineItem
			ruleType *string
		)
		err := rows.Scan(
			&li.ID, &li.InvoiceID, &li.TimeEntryID, &li.Description,
			&li.QuantityHours, &li.UnitPriceCents, &li.AmountCents,
			&li.RuleSnapshot.RuleID, &ruleType, &li.RuleSnapshot.RateCents, &li.RuleSnapshot.IncrementMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invoice_line_item: %w", err)
		}
		if ruleType != nil {
			rt := domain.RuleType(*ruleType)
			li.RuleSnapshot.RuleType = &rt
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoice_line_items: %w", err)
	}

	return items, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new invoice and returns it.
func (r *Repo) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		inv.ID, inv.ClientID, inv.ProjectID, inv.Number, inv.Currency, inv.Status.String(),
		inv.IssueDate, inv.DueDate, inv.SubtotalCents, inv.TaxCents, inv.TotalCents,
		inv.PeriodStart, inv.PeriodEnd, inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "invoice", inv.ID)
	}

	return inv, nil
}

// InsertLineItems inserts line items in one round trip, persisting the
// slice order as each row's position. The rule snapshot is denormalized
// into the row so later rule edits never change a generated invoice.
func (r *Repo) InsertLineItems(ctx context.Context, items []domain.InvoiceLineItem) error {
	if len(items) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for i, li := range items {
		var ruleType *string
		if li.RuleSnapshot.RuleType != nil {
			rt := li.RuleSnapshot.RuleType.String()
			ruleType = &rt
		}
		batch.Queue(`
			INSERT INTO invoice_line_items (`+lineItemColumns+`, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			li.ID, li.InvoiceID, li.TimeEntryID, li.Description,
			li.QuantityHours, li.UnitPriceCents, li.AmountCents,
			li.RuleSnapshot.RuleID, ruleType, li.RuleSnapshot.RateCents, li.RuleSnapshot.IncrementMinutes,
			i,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for _, li := range items {
		if _, err := results.Exec(); err != nil {
			return mapError(err, "invoice_line_item", li.ID)
		}
	}

	return nil
}

// UpdateTotals writes the computed totals onto an invoice.
// Returns domain.ErrNotFound if the invoice does not exist.
func (r *Repo) UpdateTotals(ctx context.Context, id uuid.UUID, subtotalCents, totalCents int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE invoices SET subtotal_cents = $2, total_cents = $3, updated_at = now()
		WHERE id = $1`,
		id, subtotalCents, totalCents)
	if err != nil {
		return mapError(err, "invoice", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// UpdateStatus moves an invoice between lifecycle statuses. Returns
// false when the invoice is not in the expected current status.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.InvoiceStatus) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE invoices SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, from.String(), to.String())
	if err != nil {
		return false, mapError(err, "invoice", id)
	}

	return tag.RowsAffected() == 1, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// scanInvoice reads one invoice from a row.
func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		inv    domain.Invoice
		status string
	)
	err := row.Scan(
		&inv.ID, &inv.ClientID, &inv.ProjectID, &inv.Number, &inv.Currency, &status,
		&inv.IssueDate, &inv.DueDate, &inv.SubtotalCents, &inv.TaxCents, &inv.TotalCents,
		&inv.PeriodStart, &inv.PeriodEnd, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	inv.Status = domain.InvoiceStatus(status)
	return &inv, nil
}

// mapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass through.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
