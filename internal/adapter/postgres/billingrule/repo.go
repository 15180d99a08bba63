// Package billingrule implements the billing rule repository using
// PostgreSQL.
package billingrule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/billops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/billops-backend/internal/domain"
)

const ruleColumns = `id, project_id, rule_type, rate_cents, currency,
	rounding_increment_minutes, overtime_multiplier, cap_hours, retainer_hours,
	effective_from, effective_to, created_at, updated_at`

// Repo provides billing rule persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new billing rule repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a billing rule by primary key.
// Returns domain.ErrNotFound if the rule does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BillingRule, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+ruleColumns+` FROM billing_rules WHERE id = $1`, id)
	rule, err := scanRule(row)
	if err != nil {
		return nil, mapError(err, "billing_rule", id)
	}
	return rule, nil
}

// ListByProject returns all billing rules for a project, including
// expired ones, ordered by effective_from. Rule resolution happens in
// the service layer where the reference instant lives.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.BillingRule, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT `+ruleColumns+` FROM billing_rules
		WHERE project_id = $1
		ORDER BY effective_from ASC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("list billing_rules: %w", err)
	}
	defer rows.Close()

	rules := []domain.BillingRule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan billing_rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list billing_rules: %w", err)
	}

	return rules, nil
}

// Create inserts a new billing rule and returns it.
func (r *Repo) Create(ctx context.Context, rule *domain.BillingRule) (*domain.BillingRule, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		INSERT INTO billing_rules (`+ruleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rule.ID, rule.ProjectID, rule.RuleType.String(), rule.RateCents, rule.Currency,
		rule.RoundingIncrementMinutes, rule.OvertimeMultiplier, rule.CapHours, rule.RetainerHours,
		rule.EffectiveFrom, rule.EffectiveTo, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "billing_rule", rule.ID)
	}

	return rule, nil
}

// Close sets effective_to on an open-ended rule, ending its window.
// Returns domain.ErrNotFound if the rule does not exist or is already
// closed.
func (r *Repo) Close(ctx context.Context, id uuid.UUID, effectiveTo time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE billing_rules SET effective_to = $2, updated_at = now()
		WHERE id = $1 AND effective_to IS NULL`,
		id, effectiveTo)
	if err != nil {
		return mapError(err, "billing_rule", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("billing_rule %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// scanRule reads one billing rule from a row.
func scanRule(row pgx.Row) (*domain.BillingRule, error) {
	var (
		rule     domain.BillingRule
		ruleType string
	)
	err := row.Scan(
		&rule.ID, &rule.ProjectID, &ruleType, &rule.RateCents, &rule.Currency,
		&rule.RoundingIncrementMinutes, &rule.OvertimeMultiplier, &rule.CapHours, &rule.RetainerHours,
		&rule.EffectiveFrom, &rule.EffectiveTo, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.RuleType = domain.RuleType(ruleType)
	return &rule, nil
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
