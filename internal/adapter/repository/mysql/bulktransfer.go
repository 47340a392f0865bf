package mysql

import (
	"context"

	bulkDomain "retail-backoffice/internal/domain/bulktransfer"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BulkTransferRepository struct{ db *gorm.DB }

func NewBulkTransferRepository(db *gorm.DB) *BulkTransferRepository {
	return &BulkTransferRepository{db: db}
}

// Create persists the header and its line items in one insert chain; gorm
// writes the association rows with the parent key.
func (r *BulkTransferRepository) Create(ctx context.Context, b *bulkDomain.BulkTransfer) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BulkTransferRepository) Save(ctx context.Context, b *bulkDomain.BulkTransfer) error {
	// Items are snapshots of the creation payload; only the header is updated.
	return r.db.WithContext(ctx).Omit("Items").Save(b).Error
}

func (r *BulkTransferRepository) GetByBulkTransferID(ctx context.Context, tenantID, bulkTransferID string) (*bulkDomain.BulkTransfer, error) {
	var out bulkDomain.BulkTransfer
	res := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND bulk_transfer_id = ?", tenantID, bulkTransferID).
		First(&out)
	return &out, res.Error
}

func (r *BulkTransferRepository) GetByBulkTransferIDForUpdate(ctx context.Context, tenantID, bulkTransferID string) (*bulkDomain.BulkTransfer, error) {
	var out bulkDomain.BulkTransfer
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: out.TableName()}}).
		Preload("Items").
		Where("tenant_id = ? AND bulk_transfer_id = ?", tenantID, bulkTransferID).
		First(&out)
	return &out, res.Error
}

func (r *BulkTransferRepository) ListByTenant(ctx context.Context, tenantID string) ([]bulkDomain.BulkTransfer, error) {
	var out []bulkDomain.BulkTransfer
	res := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ?", tenantID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}
