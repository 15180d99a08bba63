package entry

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// Filter defines parameters for listing time entries.
type Filter struct {
	// UserID restricts entries to one user. nil means all users.
	UserID *uuid.UUID

	// ClientID restricts entries to one client. nil means all clients.
	ClientID *uuid.UUID

	// ProjectID restricts entries to one project. nil means all projects.
	ProjectID *uuid.UUID

	// Status filters by entry status. nil means any status.
	Status *domain.EntryStatus

	// PeriodStart keeps entries with started_at >= PeriodStart.
	PeriodStart *time.Time

	// PeriodEnd keeps entries with started_at < PeriodEnd.
	PeriodEnd *time.Time

	// Limit is the maximum number of entries to return. Default: 100, max: 1000.
	Limit int

	// Offset is the number of entries to skip.
	Offset int
}

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
