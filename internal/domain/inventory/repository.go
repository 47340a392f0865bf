package inventory

import "context"

type Repository interface {
	Create(ctx context.Context, rec *Record) error
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, tenantID, storeID, productID string) (*Record, error)
	// GetForUpdate locks the row for the duration of the surrounding transaction.
	GetForUpdate(ctx context.Context, tenantID, storeID, productID string) (*Record, error)
	ListByStore(ctx context.Context, tenantID, storeID string) ([]Record, error)
}
