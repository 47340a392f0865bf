package inventorymock

import (
	"context"

	"retail-backoffice/internal/domain/inventory"
)

var _ inventory.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies inventory.Repository.
// Only fill in the function fields a test needs.
type Repo struct {
	CreateFn       func(ctx context.Context, rec *inventory.Record) error
	SaveFn         func(ctx context.Context, rec *inventory.Record) error
	GetFn          func(ctx context.Context, tenantID, storeID, productID string) (*inventory.Record, error)
	GetForUpdateFn func(ctx context.Context, tenantID, storeID, productID string) (*inventory.Record, error)
	ListByStoreFn  func(ctx context.Context, tenantID, storeID string) ([]inventory.Record, error)
}

func (m *Repo) Create(ctx context.Context, rec *inventory.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, rec)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, rec *inventory.Record) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, rec)
	}
	return nil
}

func (m *Repo) Get(ctx context.Context, tenantID, storeID, productID string) (*inventory.Record, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, tenantID, storeID, productID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetForUpdate(ctx context.Context, tenantID, storeID, productID string) (*inventory.Record, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, tenantID, storeID, productID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStore(ctx context.Context, tenantID, storeID string) ([]inventory.Record, error) {
	if m.ListByStoreFn != nil {
		return m.ListByStoreFn(ctx, tenantID, storeID)
	}
	return nil, context.Canceled
}
