package billing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
	"github.com/heartmarshall/billops-backend/internal/service/analytics"
)

// entryRepo defines the time entry repository interface needed by the
// billing service.
type entryRepo interface {
	ListApproved(ctx context.Context, clientID uuid.UUID, projectID *uuid.UUID, periodStart, periodEnd *time.Time) ([]domain.TimeEntry, error)
	// MarkBilled conditionally moves approved entries to billed, stamping
	// the rule they were priced under, and returns how many rows actually
	// changed. A shortfall means another generation run already claimed
	// some of the entries.
	MarkBilled(ctx context.Context, ids []uuid.UUID, ruleID *uuid.UUID) (int, error)
}

// ruleRepo defines the billing rule repository interface needed by the
// billing service.
type ruleRepo interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.BillingRule, error)
}

// invoiceRepo defines the invoice repository interface needed by the
// billing service.
type invoiceRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	InsertLineItems(ctx context.Context, items []domain.InvoiceLineItem) error
	UpdateTotals(ctx context.Context, id uuid.UUID, subtotalCents, totalCents int) error
}

// txManager defines the transaction manager interface needed by the
// billing service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements invoice generation over approved time entries.
type Service struct {
	log       *slog.Logger
	entries   entryRepo
	rules     ruleRepo
	invoices  invoiceRepo
	tx        txManager
	collector *analytics.Collector
	now       func() time.Time
}

// NewService creates a new billing service instance.
func NewService(
	logger *slog.Logger,
	entries entryRepo,
	rules ruleRepo,
	invoices invoiceRepo,
	tx txManager,
	collector *analytics.Collector,
) *Service {
	return &Service{
		log:       logger.With("service", "billing"),
		entries:   entries,
		rules:     rules,
		invoices:  invoices,
		tx:        tx,
		collector: collector,
		now:       func() time.Time { return time.Now().UTC() },
	}
}
