package bulktransfer

import "context"

type Repository interface {
	// Create persists the header together with its line items.
	Create(ctx context.Context, b *BulkTransfer) error
	Save(ctx context.Context, b *BulkTransfer) error
	GetByBulkTransferID(ctx context.Context, tenantID, bulkTransferID string) (*BulkTransfer, error)
	// GetByBulkTransferIDForUpdate locks the header row for the surrounding
	// transaction. Items are preloaded.
	GetByBulkTransferIDForUpdate(ctx context.Context, tenantID, bulkTransferID string) (*BulkTransfer, error)
	ListByTenant(ctx context.Context, tenantID string) ([]BulkTransfer, error)
}
