package timecapture

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// ApproveEntry moves a pending time entry to approved, making it
// eligible for billing. Only pending entries can be approved: a missing
// entry yields ErrNotFound, any other status yields ErrConflict.
func (s *Service) ApproveEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.transition(ctx, id, domain.EntryStatusApproved); err != nil {
		return err
	}

	s.collector.RecordReview(true)
	s.log.InfoContext(ctx, "time entry approved", "entry_id", id)
	return nil
}

// RejectEntry moves a pending time entry to rejected. Rejected entries
// are kept for audit but never billed. Same status rules as ApproveEntry.
func (s *Service) RejectEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.transition(ctx, id, domain.EntryStatusRejected); err != nil {
		return err
	}

	s.collector.RecordReview(false)
	s.log.InfoContext(ctx, "time entry rejected", "entry_id", id)
	return nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to domain.EntryStatus) error {
	if id == uuid.Nil {
		return domain.NewValidationError("entry_id", "required")
	}

	ok, err := s.entries.TransitionStatus(ctx, id, domain.EntryStatusPending, to)
	if err != nil {
		return fmt.Errorf("transition entry %s: %w", id, err)
	}
	if ok {
		return nil
	}

	// Distinguish "no such entry" from "entry exists but is not pending".
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get entry %s: %w", id, err)
	}
	return fmt.Errorf("entry %s is %s: %w", id, entry.Status, domain.ErrConflict)
}
