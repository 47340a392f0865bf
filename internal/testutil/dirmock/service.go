package dirmock

import (
	"context"

	"retail-backoffice/internal/domain/directory"
)

var _ directory.Service = (*Service)(nil)

// Service is a function-backed mock for directory.Service. Unfilled lookups
// report nobody, which makes role checks fail closed in tests.
type Service struct {
	FindEligibleApproversFn func(ctx context.Context, tenantID string, roles []string) ([]string, error)
	IsMemberFn              func(ctx context.Context, tenantID, userID string, roles []string) (bool, error)
}

func (m *Service) FindEligibleApprovers(ctx context.Context, tenantID string, roles []string) ([]string, error) {
	if m.FindEligibleApproversFn != nil {
		return m.FindEligibleApproversFn(ctx, tenantID, roles)
	}
	return nil, nil
}

func (m *Service) IsMember(ctx context.Context, tenantID, userID string, roles []string) (bool, error) {
	if m.IsMemberFn != nil {
		return m.IsMemberFn(ctx, tenantID, userID, roles)
	}
	return false, nil
}
