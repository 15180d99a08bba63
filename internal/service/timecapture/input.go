package timecapture

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// IngestInput is one batch of raw activity signals for a user working on
// a single project. Signals may be unsorted and carry duplicate
// timestamps.
type IngestInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	ClientID  uuid.UUID
	Signals   []domain.ActivitySignal
}

// Validate checks the batch at the ingestion boundary so the pipeline
// never has to defend against malformed signals downstream.
func (in IngestInput) Validate() error {
	var errs []domain.FieldError

	if in.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if in.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if in.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	for i, sig := range in.Signals {
		if sig.Timestamp.IsZero() {
			errs = append(errs, domain.FieldError{Field: "signals", Message: "zero timestamp at index " + strconv.Itoa(i)})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
