package bulkmock

import (
	"context"

	"retail-backoffice/internal/domain/bulktransfer"
)

var _ bulktransfer.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies bulktransfer.Repository.
type Repo struct {
	CreateFn                       func(ctx context.Context, b *bulktransfer.BulkTransfer) error
	SaveFn                         func(ctx context.Context, b *bulktransfer.BulkTransfer) error
	GetByBulkTransferIDFn          func(ctx context.Context, tenantID, bulkTransferID string) (*bulktransfer.BulkTransfer, error)
	GetByBulkTransferIDForUpdateFn func(ctx context.Context, tenantID, bulkTransferID string) (*bulktransfer.BulkTransfer, error)
	ListByTenantFn                 func(ctx context.Context, tenantID string) ([]bulktransfer.BulkTransfer, error)
}

func (m *Repo) Create(ctx context.Context, b *bulktransfer.BulkTransfer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, b *bulktransfer.BulkTransfer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByBulkTransferID(ctx context.Context, tenantID, bulkTransferID string) (*bulktransfer.BulkTransfer, error) {
	if m.GetByBulkTransferIDFn != nil {
		return m.GetByBulkTransferIDFn(ctx, tenantID, bulkTransferID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByBulkTransferIDForUpdate(ctx context.Context, tenantID, bulkTransferID string) (*bulktransfer.BulkTransfer, error) {
	if m.GetByBulkTransferIDForUpdateFn != nil {
		return m.GetByBulkTransferIDForUpdateFn(ctx, tenantID, bulkTransferID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByTenant(ctx context.Context, tenantID string) ([]bulktransfer.BulkTransfer, error) {
	if m.ListByTenantFn != nil {
		return m.ListByTenantFn(ctx, tenantID)
	}
	return nil, context.Canceled
}
