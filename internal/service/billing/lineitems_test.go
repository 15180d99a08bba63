package billing

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

func TestRoundUpToIncrement(t *testing.T) {
	tests := []struct {
		minutes   int
		increment int
		want      int
	}{
		{17, 15, 30},
		{15, 15, 15},
		{1, 15, 15},
		{0, 15, 0},
		{61, 6, 66},
		{45, 0, 45},  // zero increment is a no-op
		{45, -5, 45}, // negative treated as absent
		{7, 1, 7},
	}

	for _, tt := range tests {
		got := RoundUpToIncrement(tt.minutes, tt.increment)
		if got != tt.want {
			t.Errorf("RoundUpToIncrement(%d, %d) = %d, want %d", tt.minutes, tt.increment, got, tt.want)
		}
		// Idempotence: f(f(m)) == f(m).
		if again := RoundUpToIncrement(got, tt.increment); again != got {
			t.Errorf("RoundUpToIncrement not idempotent: %d then %d", got, again)
		}
	}
}

func entry(startedAt string, durationMinutes int, description string) domain.TimeEntry {
	e := domain.TimeEntry{
		ID:              uuid.New(),
		StartedAt:       ts(startedAt),
		DurationMinutes: durationMinutes,
		Status:          domain.EntryStatusApproved,
	}
	if description != "" {
		e.Description = &description
	}
	return e
}

func TestComputeLineItems_RoundingAndRate(t *testing.T) {
	// 17 minutes at a 15-minute increment bills as 30 minutes; at
	// $100/hour that is exactly $50.00.
	rule := &domain.BillingRule{
		ID:                       uuid.New(),
		RuleType:                 domain.RuleTypeHourly,
		RateCents:                10000,
		RoundingIncrementMinutes: 15,
	}
	invoiceID := uuid.New()

	items, subtotal, err := ComputeLineItems(invoiceID, []domain.TimeEntry{
		entry("2024-01-02T09:00:00Z", 17, "Implementation"),
	}, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	li := items[0]
	if li.QuantityHours != 0.5 {
		t.Errorf("quantity hours: got %f, want 0.5", li.QuantityHours)
	}
	if li.UnitPriceCents != 10000 {
		t.Errorf("unit price: got %d, want 10000", li.UnitPriceCents)
	}
	if li.AmountCents != 5000 {
		t.Errorf("amount: got %d, want 5000", li.AmountCents)
	}
	if subtotal != 5000 {
		t.Errorf("subtotal: got %d, want 5000", subtotal)
	}
	if li.RuleSnapshot.RuleID == nil || *li.RuleSnapshot.RuleID != rule.ID {
		t.Errorf("snapshot rule id: got %v, want %s", li.RuleSnapshot.RuleID, rule.ID)
	}
	if li.RuleSnapshot.RateCents != 10000 || li.RuleSnapshot.IncrementMinutes != 15 {
		t.Errorf("snapshot: got %+v", li.RuleSnapshot)
	}
}

func TestComputeLineItems_SubtotalIsExactIntegerSum(t *testing.T) {
	// Amounts 3333+3333+3334 must sum to exactly 10000 — the subtotal is
	// never recomputed from rounded hour totals.
	rule := &domain.BillingRule{ID: uuid.New(), RateCents: 3333}
	items, subtotal, err := ComputeLineItems(uuid.New(), []domain.TimeEntry{
		entry("2024-01-02T09:00:00Z", 60, ""),
		entry("2024-01-02T10:00:00Z", 60, ""),
		entry("2024-01-02T11:00:00Z", 60, ""),
	}, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := 0
	for _, li := range items {
		sum += li.AmountCents
	}
	if subtotal != sum {
		t.Errorf("subtotal %d != Σ amounts %d", subtotal, sum)
	}
	if subtotal != 9999 {
		t.Errorf("subtotal: got %d, want 9999", subtotal)
	}
}

func TestComputeLineItems_SubtotalScenario(t *testing.T) {
	// Three line amounts of 3333, 3333, 3334 cents: rates chosen so the
	// per-line half-up rounding produces those exact amounts.
	rule := &domain.BillingRule{ID: uuid.New(), RateCents: 6667}
	items, subtotal, err := ComputeLineItems(uuid.New(), []domain.TimeEntry{
		entry("2024-01-02T09:00:00Z", 30, ""), // 0.5h * 6667 = 3333.5 → 3334
		entry("2024-01-02T10:00:00Z", 30, ""),
		entry("2024-01-02T11:00:00Z", 30, ""),
	}, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for _, li := range items {
		if li.AmountCents != 3334 {
			t.Errorf("amount: got %d, want 3334 (half-up)", li.AmountCents)
		}
	}
	if subtotal != 3*3334 {
		t.Errorf("subtotal: got %d, want %d", subtotal, 3*3334)
	}
}

func TestComputeLineItems_NilRuleBillsAtZero(t *testing.T) {
	items, subtotal, err := ComputeLineItems(uuid.New(), []domain.TimeEntry{
		entry("2024-01-02T09:00:00Z", 90, "Research"),
	}, nil)
	if err != nil {
		t.Fatalf("no matching rule must not be an error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].AmountCents != 0 || items[0].UnitPriceCents != 0 {
		t.Errorf("zero-rate line: got amount %d, unit price %d", items[0].AmountCents, items[0].UnitPriceCents)
	}
	if items[0].QuantityHours != 1.5 {
		t.Errorf("quantity hours: got %f, want 1.5 (no rounding without a rule)", items[0].QuantityHours)
	}
	if items[0].RuleSnapshot.RuleID != nil {
		t.Errorf("snapshot rule id should be nil, got %v", items[0].RuleSnapshot.RuleID)
	}
	if subtotal != 0 {
		t.Errorf("subtotal: got %d, want 0", subtotal)
	}
}

func TestComputeLineItems_OrdersByStartedAt(t *testing.T) {
	rule := &domain.BillingRule{ID: uuid.New(), RateCents: 6000}
	first := entry("2024-01-02T08:00:00Z", 60, "first")
	second := entry("2024-01-02T12:00:00Z", 60, "second")

	items, _, err := ComputeLineItems(uuid.New(), []domain.TimeEntry{second, first}, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Description != "first" || items[1].Description != "second" {
		t.Errorf("items out of order: %q then %q", items[0].Description, items[1].Description)
	}
}

func TestComputeLineItems_OneLinePerEntry(t *testing.T) {
	rule := &domain.BillingRule{ID: uuid.New(), RateCents: 6000}
	entries := []domain.TimeEntry{
		entry("2024-01-02T09:00:00Z", 60, "same work"),
		entry("2024-01-02T10:00:00Z", 60, "same work"),
	}

	items, _, err := ComputeLineItems(uuid.New(), entries, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Same description must not merge.
	if len(items) != 2 {
		t.Errorf("got %d items, want 2 (one entry, one line)", len(items))
	}
}

func TestComputeLineItems_DefaultDescription(t *testing.T) {
	items, _, err := ComputeLineItems(uuid.New(), []domain.TimeEntry{
		entry("2024-01-02T09:00:00Z", 60, ""),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Description != "Work" {
		t.Errorf("description: got %q, want %q", items[0].Description, "Work")
	}
}

func TestComputeLineItems_OvertimeBeyondCap(t *testing.T) {
	capHours := 2.0
	rule := &domain.BillingRule{
		ID:                 uuid.New(),
		RateCents:          10000,
		OvertimeMultiplier: 1.5,
		CapHours:           &capHours,
	}

	// 1.5h regular, then 1h straddling the cap (0.5 regular + 0.5 overtime),
	// then 1h fully overtime.
	items, subtotal, err := ComputeLineItems(uuid.New(), []domain.TimeEntry{
		entry("2024-01-02T09:00:00Z", 90, ""),
		entry("2024-01-02T11:00:00Z", 60, ""),
		entry("2024-01-02T13:00:00Z", 60, ""),
	}, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantAmounts := []int{15000, 5000 + 7500, 15000}
	for i, want := range wantAmounts {
		if items[i].AmountCents != want {
			t.Errorf("item %d amount: got %d, want %d", i, items[i].AmountCents, want)
		}
	}
	if subtotal != 15000+12500+15000 {
		t.Errorf("subtotal: got %d, want %d", subtotal, 15000+12500+15000)
	}
}

func TestComputeLineItems_CapWithoutMultiplierKeepsBaseRate(t *testing.T) {
	capHours := 1.0
	rule := &domain.BillingRule{
		ID:        uuid.New(),
		RateCents: 10000,
		CapHours:  &capHours,
	}

	items, _, err := ComputeLineItems(uuid.New(), []domain.TimeEntry{
		entry("2024-01-02T09:00:00Z", 120, ""),
	}, rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Multiplier defaults to 1: hours past the cap still bill at base rate.
	if items[0].AmountCents != 20000 {
		t.Errorf("amount: got %d, want 20000", items[0].AmountCents)
	}
}

func TestComputeLineItems_InvalidRule(t *testing.T) {
	tests := []struct {
		name string
		rule domain.BillingRule
	}{
		{"negative rate", domain.BillingRule{ID: uuid.New(), RateCents: -1}},
		{"negative increment", domain.BillingRule{ID: uuid.New(), RoundingIncrementMinutes: -15}},
		{"multiplier below one", domain.BillingRule{ID: uuid.New(), OvertimeMultiplier: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ComputeLineItems(uuid.New(), nil, &tt.rule)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestComputeLineItems_EmptyEntries(t *testing.T) {
	items, subtotal, err := ComputeLineItems(uuid.New(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 || subtotal != 0 {
		t.Errorf("got %d items, subtotal %d; want 0/0", len(items), subtotal)
	}
}

func TestRoundHalfUpCents(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{3333.5, 3334},
		{3333.4, 3333},
		{0.5, 1},
		{0.49, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundHalfUpCents(tt.in); got != tt.want {
			t.Errorf("roundHalfUpCents(%f) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
