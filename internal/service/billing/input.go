package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// GenerateInvoiceInput identifies the draft invoice to fill and scopes
// which approved entries feed it. ProjectID nil means all the client's
// projects; a nil period bound leaves that side open.
type GenerateInvoiceInput struct {
	InvoiceID   uuid.UUID
	ClientID    uuid.UUID
	ProjectID   *uuid.UUID
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// Validate checks identifiers and period ordering.
func (in GenerateInvoiceInput) Validate() error {
	var errs []domain.FieldError

	if in.InvoiceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "invoice_id", Message: "required"})
	}
	if in.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if in.ProjectID != nil && *in.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "must be a valid id when set"})
	}
	if in.PeriodStart != nil && in.PeriodEnd != nil && in.PeriodEnd.Before(*in.PeriodStart) {
		errs = append(errs, domain.FieldError{Field: "period_end", Message: "must not precede period_start"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
