package transfermock

import (
	"context"

	"retail-backoffice/internal/domain/transfer"
)

var _ transfer.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies transfer.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, t *transfer.Transfer) error
	SaveFn                     func(ctx context.Context, t *transfer.Transfer) error
	GetByTransferIDFn          func(ctx context.Context, tenantID, transferID string) (*transfer.Transfer, error)
	GetByTransferIDForUpdateFn func(ctx context.Context, tenantID, transferID string) (*transfer.Transfer, error)
	ListByTenantFn             func(ctx context.Context, tenantID string) ([]transfer.Transfer, error)
	ListByReferenceForUpdateFn func(ctx context.Context, tenantID, reference string) ([]transfer.Transfer, error)
}

func (m *Repo) Create(ctx context.Context, t *transfer.Transfer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, t *transfer.Transfer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByTransferID(ctx context.Context, tenantID, transferID string) (*transfer.Transfer, error) {
	if m.GetByTransferIDFn != nil {
		return m.GetByTransferIDFn(ctx, tenantID, transferID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByTransferIDForUpdate(ctx context.Context, tenantID, transferID string) (*transfer.Transfer, error) {
	if m.GetByTransferIDForUpdateFn != nil {
		return m.GetByTransferIDForUpdateFn(ctx, tenantID, transferID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByTenant(ctx context.Context, tenantID string) ([]transfer.Transfer, error) {
	if m.ListByTenantFn != nil {
		return m.ListByTenantFn(ctx, tenantID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByReferenceForUpdate(ctx context.Context, tenantID, reference string) ([]transfer.Transfer, error) {
	if m.ListByReferenceForUpdateFn != nil {
		return m.ListByReferenceForUpdateFn(ctx, tenantID, reference)
	}
	return nil, context.Canceled
}
