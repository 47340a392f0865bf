package catalogmock

import (
	"context"

	"retail-backoffice/internal/domain/catalog"
)

var _ catalog.Service = (*Service)(nil)

// Service is a function-backed mock for catalog.Service. Unfilled checks
// report true so tests that do not care about catalog contents pass through.
type Service struct {
	ProductExistsFn func(ctx context.Context, tenantID, productID string) (bool, error)
	StoreExistsFn   func(ctx context.Context, tenantID, storeID string) (bool, error)
}

func (m *Service) ProductExists(ctx context.Context, tenantID, productID string) (bool, error) {
	if m.ProductExistsFn != nil {
		return m.ProductExistsFn(ctx, tenantID, productID)
	}
	return true, nil
}

func (m *Service) StoreExists(ctx context.Context, tenantID, storeID string) (bool, error) {
	if m.StoreExistsFn != nil {
		return m.StoreExistsFn(ctx, tenantID, storeID)
	}
	return true, nil
}
