package transfer

import "context"

type Repository interface {
	Create(ctx context.Context, t *Transfer) error
	Save(ctx context.Context, t *Transfer) error
	GetByTransferID(ctx context.Context, tenantID, transferID string) (*Transfer, error)
	// GetByTransferIDForUpdate locks the row for the surrounding transaction.
	GetByTransferIDForUpdate(ctx context.Context, tenantID, transferID string) (*Transfer, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Transfer, error)
	// ListByReferenceForUpdate returns (locked) all children fanned out from a
	// bulk transfer number.
	ListByReferenceForUpdate(ctx context.Context, tenantID, reference string) ([]Transfer, error)
}
