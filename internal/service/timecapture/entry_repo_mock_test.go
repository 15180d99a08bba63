package timecapture

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

var _ entryRepo = &entryRepoMock{}

type entryRepoMock struct {
	CreateBatchFunc      func(ctx context.Context, entries []domain.TimeEntry) ([]domain.TimeEntry, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error)
	TransitionStatusFunc func(ctx context.Context, id uuid.UUID, from, to domain.EntryStatus) (bool, error)
	DailyTotalsFunc      func(ctx context.Context, dayStart, dayEnd time.Time) ([]domain.DailyEntryTotal, error)

	calls struct {
		CreateBatch []struct {
			Ctx     context.Context
			Entries []domain.TimeEntry
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		TransitionStatus []struct {
			Ctx  context.Context
			ID   uuid.UUID
			From domain.EntryStatus
			To   domain.EntryStatus
		}
		DailyTotals []struct {
			Ctx      context.Context
			DayStart time.Time
			DayEnd   time.Time
		}
	}
	lockCreateBatch      sync.RWMutex
	lockGetByID          sync.RWMutex
	lockTransitionStatus sync.RWMutex
	lockDailyTotals      sync.RWMutex
}

func (mock *entryRepoMock) CreateBatch(ctx context.Context, entries []domain.TimeEntry) ([]domain.TimeEntry, error) {
	if mock.CreateBatchFunc == nil {
		panic("entryRepoMock.CreateBatchFunc: method is nil but entryRepo.CreateBatch was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Entries []domain.TimeEntry
	}{Ctx: ctx, Entries: entries}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, callInfo)
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, entries)
}

func (mock *entryRepoMock) CreateBatchCalls() []struct {
	Ctx     context.Context
	Entries []domain.TimeEntry
} {
	mock.lockCreateBatch.RLock()
	calls := mock.calls.CreateBatch
	mock.lockCreateBatch.RUnlock()
	return calls
}

func (mock *entryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error) {
	if mock.GetByIDFunc == nil {
		panic("entryRepoMock.GetByIDFunc: method is nil but entryRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *entryRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *entryRepoMock) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.EntryStatus) (bool, error) {
	if mock.TransitionStatusFunc == nil {
		panic("entryRepoMock.TransitionStatusFunc: method is nil but entryRepo.TransitionStatus was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   uuid.UUID
		From domain.EntryStatus
		To   domain.EntryStatus
	}{Ctx: ctx, ID: id, From: from, To: to}
	mock.lockTransitionStatus.Lock()
	mock.calls.TransitionStatus = append(mock.calls.TransitionStatus, callInfo)
	mock.lockTransitionStatus.Unlock()
	return mock.TransitionStatusFunc(ctx, id, from, to)
}

func (mock *entryRepoMock) TransitionStatusCalls() []struct {
	Ctx  context.Context
	ID   uuid.UUID
	From domain.EntryStatus
	To   domain.EntryStatus
} {
	mock.lockTransitionStatus.RLock()
	calls := mock.calls.TransitionStatus
	mock.lockTransitionStatus.RUnlock()
	return calls
}

func (mock *entryRepoMock) DailyTotals(ctx context.Context, dayStart, dayEnd time.Time) ([]domain.DailyEntryTotal, error) {
	if mock.DailyTotalsFunc == nil {
		panic("entryRepoMock.DailyTotalsFunc: method is nil but entryRepo.DailyTotals was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		DayStart time.Time
		DayEnd   time.Time
	}{Ctx: ctx, DayStart: dayStart, DayEnd: dayEnd}
	mock.lockDailyTotals.Lock()
	mock.calls.DailyTotals = append(mock.calls.DailyTotals, callInfo)
	mock.lockDailyTotals.Unlock()
	return mock.DailyTotalsFunc(ctx, dayStart, dayEnd)
}

func (mock *entryRepoMock) DailyTotalsCalls() []struct {
	Ctx      context.Context
	DayStart time.Time
	DayEnd   time.Time
} {
	mock.lockDailyTotals.RLock()
	calls := mock.calls.DailyTotals
	mock.lockDailyTotals.RUnlock()
	return calls
}
