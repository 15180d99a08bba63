package billing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

var _ entryRepo = &entryRepoMock{}

type entryRepoMock struct {
	ListApprovedFunc func(ctx context.Context, clientID uuid.UUID, projectID *uuid.UUID, periodStart, periodEnd *time.Time) ([]domain.TimeEntry, error)
	MarkBilledFunc   func(ctx context.Context, ids []uuid.UUID, ruleID *uuid.UUID) (int, error)

	calls struct {
		ListApproved []struct {
			Ctx         context.Context
			ClientID    uuid.UUID
			ProjectID   *uuid.UUID
			PeriodStart *time.Time
			PeriodEnd   *time.Time
		}
		MarkBilled []struct {
			Ctx    context.Context
			IDs    []uuid.UUID
			RuleID *uuid.UUID
		}
	}
	lockListApproved sync.RWMutex
	lockMarkBilled   sync.RWMutex
}

func (mock *entryRepoMock) ListApproved(ctx context.Context, clientID uuid.UUID, projectID *uuid.UUID, periodStart, periodEnd *time.Time) ([]domain.TimeEntry, error) {
	if mock.ListApprovedFunc == nil {
		panic("entryRepoMock.ListApprovedFunc: method is nil but entryRepo.ListApproved was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ClientID    uuid.UUID
		ProjectID   *uuid.UUID
		PeriodStart *time.Time
		PeriodEnd   *time.Time
	}{Ctx: ctx, ClientID: clientID, ProjectID: projectID, PeriodStart: periodStart, PeriodEnd: periodEnd}
	mock.lockListApproved.Lock()
	mock.calls.ListApproved = append(mock.calls.ListApproved, callInfo)
	mock.lockListApproved.Unlock()
	return mock.ListApprovedFunc(ctx, clientID, projectID, periodStart, periodEnd)
}

func (mock *entryRepoMock) ListApprovedCalls() []struct {
	Ctx         context.Context
	ClientID    uuid.UUID
	ProjectID   *uuid.UUID
	PeriodStart *time.Time
	PeriodEnd   *time.Time
} {
	mock.lockListApproved.RLock()
	calls := mock.calls.ListApproved
	mock.lockListApproved.RUnlock()
	return calls
}

func (mock *entryRepoMock) MarkBilled(ctx context.Context, ids []uuid.UUID, ruleID *uuid.UUID) (int, error) {
	if mock.MarkBilledFunc == nil {
		panic("entryRepoMock.MarkBilledFunc: method is nil but entryRepo.MarkBilled was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		IDs    []uuid.UUID
		RuleID *uuid.UUID
	}{Ctx: ctx, IDs: ids, RuleID: ruleID}
	mock.lockMarkBilled.Lock()
	mock.calls.MarkBilled = append(mock.calls.MarkBilled, callInfo)
	mock.lockMarkBilled.Unlock()
	return mock.MarkBilledFunc(ctx, ids, ruleID)
}

func (mock *entryRepoMock) MarkBilledCalls() []struct {
	Ctx    context.Context
	IDs    []uuid.UUID
	RuleID *uuid.UUID
} {
	mock.lockMarkBilled.RLock()
	calls := mock.calls.MarkBilled
	mock.lockMarkBilled.RUnlock()
	return calls
}
