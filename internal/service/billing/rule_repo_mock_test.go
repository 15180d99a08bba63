package billing

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

var _ ruleRepo = &ruleRepoMock{}

type ruleRepoMock struct {
	ListByProjectFunc func(ctx context.Context, projectID uuid.UUID) ([]domain.BillingRule, error)

	calls struct {
		ListByProject []struct {
			Ctx       context.Context
			ProjectID uuid.UUID
		}
	}
	lockListByProject sync.RWMutex
}

func (mock *ruleRepoMock) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.BillingRule, error) {
	if mock.ListByProjectFunc == nil {
		panic("ruleRepoMock.ListByProjectFunc: method is nil but ruleRepo.ListByProject was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProjectID uuid.UUID
	}{Ctx: ctx, ProjectID: projectID}
	mock.lockListByProject.Lock()
	mock.calls.ListByProject = append(mock.calls.ListByProject, callInfo)
	mock.lockListByProject.Unlock()
	return mock.ListByProjectFunc(ctx, projectID)
}

func (mock *ruleRepoMock) ListByProjectCalls() []struct {
	Ctx       context.Context
	ProjectID uuid.UUID
} {
	mock.lockListByProject.RLock()
	calls := mock.calls.ListByProject
	mock.lockListByProject.RUnlock()
	return calls
}
