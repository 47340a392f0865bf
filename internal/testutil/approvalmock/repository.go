package approvalmock

import (
	"context"
	"time"

	"retail-backoffice/internal/domain/approval"
)

var (
	_ approval.RuleRepository    = (*RuleRepo)(nil)
	_ approval.RequestRepository = (*RequestRepo)(nil)
)

// RuleRepo is a function-backed mock that satisfies approval.RuleRepository.
// Only fill in the function fields a test needs.
type RuleRepo struct {
	CreateFn       func(ctx context.Context, r *approval.Rule) error
	SaveFn         func(ctx context.Context, r *approval.Rule) error
	GetByRuleIDFn  func(ctx context.Context, tenantID, ruleID string) (*approval.Rule, error)
	ListActiveFn   func(ctx context.Context, tenantID string, objectType approval.ObjectType) ([]approval.Rule, error)
	ListByTenantFn func(ctx context.Context, tenantID string) ([]approval.Rule, error)
}

func (m *RuleRepo) Create(ctx context.Context, r *approval.Rule) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RuleRepo) Save(ctx context.Context, r *approval.Rule) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *RuleRepo) GetByRuleID(ctx context.Context, tenantID, ruleID string) (*approval.Rule, error) {
	if m.GetByRuleIDFn != nil {
		return m.GetByRuleIDFn(ctx, tenantID, ruleID)
	}
	return nil, context.Canceled
}

func (m *RuleRepo) ListActive(ctx context.Context, tenantID string, objectType approval.ObjectType) ([]approval.Rule, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx, tenantID, objectType)
	}
	return nil, nil
}

func (m *RuleRepo) ListByTenant(ctx context.Context, tenantID string) ([]approval.Rule, error) {
	if m.ListByTenantFn != nil {
		return m.ListByTenantFn(ctx, tenantID)
	}
	return nil, context.Canceled
}

// RequestRepo is a function-backed mock that satisfies
// approval.RequestRepository.
type RequestRepo struct {
	CreateFn                  func(ctx context.Context, r *approval.Request) error
	SaveFn                    func(ctx context.Context, r *approval.Request) error
	GetByRequestIDFn          func(ctx context.Context, tenantID, requestID string) (*approval.Request, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, tenantID, requestID string) (*approval.Request, error)
	GetByObjectFn             func(ctx context.Context, tenantID string, objectType approval.ObjectType, objectID string) (*approval.Request, error)
	ListPendingFn             func(ctx context.Context, tenantID string) ([]approval.Request, error)
	ExpireDueFn               func(ctx context.Context, now time.Time) (int64, error)
}

func (m *RequestRepo) Create(ctx context.Context, r *approval.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RequestRepo) Save(ctx context.Context, r *approval.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *RequestRepo) GetByRequestID(ctx context.Context, tenantID, requestID string) (*approval.Request, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, tenantID, requestID)
	}
	return nil, context.Canceled
}

func (m *RequestRepo) GetByRequestIDForUpdate(ctx context.Context, tenantID, requestID string) (*approval.Request, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, tenantID, requestID)
	}
	return nil, context.Canceled
}

func (m *RequestRepo) GetByObject(ctx context.Context, tenantID string, objectType approval.ObjectType, objectID string) (*approval.Request, error) {
	if m.GetByObjectFn != nil {
		return m.GetByObjectFn(ctx, tenantID, objectType, objectID)
	}
	return nil, context.Canceled
}

func (m *RequestRepo) ListPending(ctx context.Context, tenantID string) ([]approval.Request, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx, tenantID)
	}
	return nil, context.Canceled
}

func (m *RequestRepo) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	if m.ExpireDueFn != nil {
		return m.ExpireDueFn(ctx, now)
	}
	return 0, nil
}
