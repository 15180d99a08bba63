// Package entry implements the time entry repository using PostgreSQL.
// It provides batch creation, status transitions, filtered listing and
// per-day aggregation for time entries.
package entry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/billops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/billops-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const entryColumns = `id, user_id, project_id, client_id, billing_rule_id, source,
	started_at, ended_at, duration_minutes, description, status, context,
	created_at, updated_at`

// Repo provides time entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new time entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a time entry by primary key.
// Returns domain.ErrNotFound if the entry does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+entryColumns+` FROM time_entries WHERE id = $1`, id)
	e, err := scanEntry(row)
	if err != nil {
		return nil, mapError(err, "time_entry", id)
	}
	return e, nil
}

// List returns time entries matching the filter, ordered by started_at
// ascending (id breaks timestamp ties so pagination is stable). Returns
// an empty slice when nothing matches.
func (r *Repo) List(ctx context.Context, f Filter) ([]domain.TimeEntry, error) {
	f.normalize()

	builder := psql.Select(entryColumns).
		From("time_entries").
		OrderBy("started_at ASC", "id ASC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	if f.UserID != nil {
		builder = builder.Where(sq.Eq{"user_id": *f.UserID})
	}
	if f.ClientID != nil {
		builder = builder.Where(sq.Eq{"client_id": *f.ClientID})
	}
	if f.ProjectID != nil {
		builder = builder.Where(sq.Eq{"project_id": *f.ProjectID})
	}
	if f.Status != nil {
		builder = builder.Where(sq.Eq{"status": f.Status.String()})
	}
	if f.PeriodStart != nil {
		builder = builder.Where(sq.GtOrEq{"started_at": *f.PeriodStart})
	}
	if f.PeriodEnd != nil {
		builder = builder.Where(sq.Lt{"started_at": *f.PeriodEnd})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time_entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.TimeEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time_entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list time_entries: %w", err)
	}

	return entries, nil
}

// ListApproved returns all approved entries for a client, optionally
// narrowed to one project and a started_at period. Used by invoice
// generation: it walks listing pages until the scope is exhausted, so
// an invoice larger than one page is never silently truncated.
func (r *Repo) ListApproved(ctx context.Context, clientID uuid.UUID, projectID *uuid.UUID, periodStart, periodEnd *time.Time) ([]domain.TimeEntry, error) {
	status := domain.EntryStatusApproved
	f := Filter{
		ClientID:    &clientID,
		ProjectID:   projectID,
		Status:      &status,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Limit:       maxLimit,
	}

	var entries []domain.TimeEntry
	for {
		page, err := r.List(ctx, f)
		if err != nil {
			return nil, err
		}
		entries = append(entries, page...)
		if len(page) < maxLimit {
			return entries, nil
		}
		f.Offset += maxLimit
	}
}

// DailyTotals aggregates entry counts and minutes per user for entries
// started within [dayStart, dayEnd), excluding rejected entries. The
// aggregation runs in SQL.
func (r *Repo) DailyTotals(ctx context.Context, dayStart, dayEnd time.Time) ([]domain.DailyEntryTotal, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT user_id, date_trunc('day', started_at) AS day,
		       count(*) AS entry_count, sum(duration_minutes) AS total_minutes
		FROM time_entries
		WHERE started_at >= $1 AND started_at < $2 AND status <> 'rejected'
		GROUP BY user_id, day
		ORDER BY user_id, day`,
		dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.DailyEntryTotal{}
	for rows.Next() {
		var t domain.DailyEntryTotal
		if err := rows.Scan(&t.UserID, &t.Day, &t.EntryCount, &t.TotalMinutes); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}

	return totals, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateBatch inserts time entries in one round trip and returns them.
func (r *Repo) CreateBatch(ctx context.Context, entries []domain.TimeEntry) ([]domain.TimeEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, e := range entries {
		contextJSON, err := marshalContext(e.Context)
		if err != nil {
			return nil, fmt.Errorf("time_entry %s: marshal context: %w", e.ID, err)
		}
		batch.Queue(`
			INSERT INTO time_entries (`+entryColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			e.ID, e.UserID, e.ProjectID, e.ClientID, e.BillingRuleID, e.Source.String(),
			e.StartedAt, e.EndedAt, e.DurationMinutes, e.Description, e.Status.String(), contextJSON,
			e.CreatedAt, e.UpdatedAt,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for _, e := range entries {
		if _, err := results.Exec(); err != nil {
			return nil, mapError(err, "time_entry", e.ID)
		}
	}

	return entries, nil
}

// TransitionStatus conditionally moves an entry from one status to
// another. Returns false when the entry does not exist or is not in the
// expected status; the caller decides which case it is.
func (r *Repo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.EntryStatus) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE time_entries SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, from.String(), to.String())
	if err != nil {
		return false, mapError(err, "time_entry", id)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkBilled conditionally moves approved entries to billed, stamping
// the billing rule they were priced under, and returns the number of
// rows actually updated. Entries already billed (or in any other
// non-approved status) are left untouched and not counted, which is
// what invoice generation relies on for its at-most-once guarantee.
func (r *Repo) MarkBilled(ctx context.Context, ids []uuid.UUID, ruleID *uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE time_entries SET status = 'billed', billing_rule_id = $2, updated_at = now()
		WHERE id = ANY($1) AND status = 'approved'`,
		ids, ruleID)
	if err != nil {
		return 0, fmt.Errorf("mark time_entries billed: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// scanEntry reads one time entry from a row.
func scanEntry(row pgx.Row) (*domain.TimeEntry, error) {
	var (
		e           domain.TimeEntry
		source      string
		status      string
		contextJSON []byte
	)
	err := row.Scan(
		&e.ID, &e.UserID, &e.ProjectID, &e.ClientID, &e.BillingRuleID, &source,
		&e.StartedAt, &e.EndedAt, &e.DurationMinutes, &e.Description, &status, &contextJSON,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Source = domain.EntrySource(source)
	e.Status = domain.EntryStatus(status)
	if len(contextJSON) > 0 {
		var ec domain.EntryContext
		if err := json.Unmarshal(contextJSON, &ec); err != nil {
			return nil, fmt.Errorf("unmarshal context: %w", err)
		}
		e.Context = &ec
	}

	return &e, nil
}

// marshalContext serializes the entry context for the jsonb column
// (nil -> NULL).
func marshalContext(ec *domain.EntryContext) ([]byte, error) {
	if ec == nil {
		return nil, nil
	}
	return json.Marshal(ec)
}

// mapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass through.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	// pgx.ErrNoRows -> domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	// PgError codes
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

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, id, err)
}
