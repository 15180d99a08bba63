package billingrule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/billops-backend/internal/adapter/postgres/billingrule"
	"github.com/heartmarshall/billops-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/billops-backend/internal/domain"
)

func newRepo(t *testing.T) (*billingrule.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return billingrule.New(pool), pool
}

func TestRepo_Create_And_GetByID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	capHours := 40.0
	rule := &domain.BillingRule{
		ID:                       uuid.New(),
		ProjectID:                uuid.New(),
		RuleType:                 domain.RuleTypeHourly,
		RateCents:                12500,
		Currency:                 "EUR",
		RoundingIncrementMinutes: 6,
		OvertimeMultiplier:       1.5,
		CapHours:                 &capHours,
		EffectiveFrom:            now.AddDate(0, -1, 0),
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if _, err := repo.Create(ctx, rule); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, rule.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.RateCents != 12500 || got.Currency != "EUR" || got.RoundingIncrementMinutes != 6 {
		t.Errorf("rule not round-tripped: %+v", got)
	}
	if got.CapHours == nil || *got.CapHours != 40.0 {
		t.Errorf("cap hours: got %v, want 40", got.CapHours)
	}
	if got.EffectiveTo != nil {
		t.Errorf("effective_to should be open, got %v", got.EffectiveTo)
	}
}

func TestRepo_Create_DuplicateID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedBillingRule(t, pool)

	dup := seeded
	_, err := repo.Create(ctx, &dup)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_ListByProject_OrdersByEffectiveFrom(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	projectID := uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Seed out of order; the repo must return effective_from ascending.
	for _, months := range []int{2, 0, 1} {
		testhelper.SeedBillingRule(t, pool, func(r *domain.BillingRule) {
			r.ProjectID = projectID
			r.EffectiveFrom = base.AddDate(0, months, 0)
		})
	}
	// Another project's rule must not leak in.
	testhelper.SeedBillingRule(t, pool)

	rules, err := repo.ListByProject(ctx, projectID)
	if err != nil {
		t.Fatalf("ListByProject: unexpected error: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(rules))
	}
	for i := 1; i < len(rules); i++ {
		if rules[i].EffectiveFrom.Before(rules[i-1].EffectiveFrom) {
			t.Errorf("rules out of order at %d: %v after %v", i, rules[i].EffectiveFrom, rules[i-1].EffectiveFrom)
		}
	}
}

func TestRepo_Close(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedBillingRule(t, pool)
	effectiveTo := seeded.EffectiveFrom.AddDate(0, 2, 0)

	if err := repo.Close(ctx, seeded.ID, effectiveTo); err != nil {
		t.Fatalf("Close: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.EffectiveTo == nil || !got.EffectiveTo.Equal(effectiveTo) {
		t.Errorf("effective_to: got %v, want %v", got.EffectiveTo, effectiveTo)
	}

	// Already closed: a second close finds no open rule.
	err = repo.Close(ctx, seeded.ID, effectiveTo.AddDate(0, 1, 0))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on closed rule, got %v", err)
	}
}

func TestRepo_Close_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.Close(context.Background(), uuid.New(), time.Now().UTC())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
