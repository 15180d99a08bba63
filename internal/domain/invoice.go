package domain

import (
	"time"

	"github.com/google/uuid"
)

// RuleSnapshot freezes the billing rule state applied to a line item at
// generation time, so later rule edits never retroactively change a
// generated invoice. RuleID and RuleType are nil for zero-rate billing
// (no rule matched).
type RuleSnapshot struct {
	RuleID           *uuid.UUID
	RuleType         *RuleType
	RateCents        int
	IncrementMinutes int
}

// InvoiceLineItem is one priced, rounded unit of an invoice, traceable to
// exactly one time entry. Invariant: AmountCents is QuantityHours times
// UnitPriceCents, rounded half-up at the cent boundary (overtime pricing
// folds into AmountCents; UnitPriceCents stays the base rate).
type InvoiceLineItem struct {
	ID             uuid.UUID
	InvoiceID      uuid.UUID
	TimeEntryID    *uuid.UUID
	Description    string
	QuantityHours  float64
	UnitPriceCents int
	AmountCents    int
	RuleSnapshot   RuleSnapshot
}

// Invoice is the billing document the core writes totals into. Invariant:
// TotalCents == SubtotalCents + TaxCents, always composed from the parts
// (tax is opaque input computed elsewhere).
type Invoice struct {
	ID            uuid.UUID
	ClientID      uuid.UUID
	ProjectID     *uuid.UUID
	Number        string
	Currency      string
	Status        InvoiceStatus
	IssueDate     time.Time
	DueDate       *time.Time
	SubtotalCents int
	TaxCents      int
	TotalCents    int
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
