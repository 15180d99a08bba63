package billing

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

var _ invoiceRepo = &invoiceRepoMock{}

type invoiceRepoMock struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	InsertLineItemsFunc func(ctx context.Context, items []domain.InvoiceLineItem) error
	UpdateTotalsFunc    func(ctx context.Context, id uuid.UUID, subtotalCents, totalCents int) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		InsertLineItems []struct {
			Ctx   context.Context
			Items []domain.InvoiceLineItem
		}
		UpdateTotals []struct {
			Ctx           context.Context
			ID            uuid.UUID
			SubtotalCents int
			TotalCents    int
		}
	}
	lockGetByID         sync.RWMutex
	lockInsertLineItems sync.RWMutex
	lockUpdateTotals    sync.RWMutex
}

func (mock *invoiceRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	if mock.GetByIDFunc == nil {
		panic("invoiceRepoMock.GetByIDFunc: method is nil but invoiceRepo.GetByID was just called")
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

func (mock *invoiceRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *invoiceRepoMock) InsertLineItems(ctx context.Context, items []domain.InvoiceLineItem) error {
	if mock.InsertLineItemsFunc == nil {
		panic("invoiceRepoMock.InsertLineItemsFunc: method is nil but invoiceRepo.InsertLineItems was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Items []domain.InvoiceLineItem
	}{Ctx: ctx, Items: items}
	mock.lockInsertLineItems.Lock()
	mock.calls.InsertLineItems = append(mock.calls.InsertLineItems, callInfo)
	mock.lockInsertLineItems.Unlock()
	return mock.InsertLineItemsFunc(ctx, items)
}

func (mock *invoiceRepoMock) InsertLineItemsCalls() []struct {
	Ctx   context.Context
	Items []domain.InvoiceLineItem
} {
	mock.lockInsertLineItems.RLock()
	calls := mock.calls.InsertLineItems
	mock.lockInsertLineItems.RUnlock()
	return calls
}

func (mock *invoiceRepoMock) UpdateTotals(ctx context.Context, id uuid.UUID, subtotalCents, totalCents int) error {
	if mock.UpdateTotalsFunc == nil {
		panic("invoiceRepoMock.UpdateTotalsFunc: method is nil but invoiceRepo.UpdateTotals was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		ID            uuid.UUID
		SubtotalCents int
		TotalCents    int
	}{Ctx: ctx, ID: id, SubtotalCents: subtotalCents, TotalCents: totalCents}
	mock.lockUpdateTotals.Lock()
	mock.calls.UpdateTotals = append(mock.calls.UpdateTotals, callInfo)
	mock.lockUpdateTotals.Unlock()
	return mock.UpdateTotalsFunc(ctx, id, subtotalCents, totalCents)
}

func (mock *invoiceRepoMock) UpdateTotalsCalls() []struct {
	Ctx           context.Context
	ID            uuid.UUID
	SubtotalCents int
	TotalCents    int
} {
	mock.lockUpdateTotals.RLock()
	calls := mock.calls.UpdateTotals
	mock.lockUpdateTotals.RUnlock()
	return calls
}
