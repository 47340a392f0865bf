package mysql

import (
	"context"

	transferDomain "retail-backoffice/internal/domain/transfer"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransferRepository struct{ db *gorm.DB }

func NewTransferRepository(db *gorm.DB) *TransferRepository { return &TransferRepository{db: db} }

func (r *TransferRepository) Create(ctx context.Context, t *transferDomain.Transfer) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransferRepository) Save(ctx context.Context, t *transferDomain.Transfer) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TransferRepository) GetByTransferID(ctx context.Context, tenantID, transferID string) (*transferDomain.Transfer, error) {
	var out transferDomain.Transfer
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND transfer_id = ?", tenantID, transferID).
		First(&out)
	return &out, res.Error
}

func (r *TransferRepository) GetByTransferIDForUpdate(ctx context.Context, tenantID, transferID string) (*transferDomain.Transfer, error) {
	var out transferDomain.Transfer
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND transfer_id = ?", tenantID, transferID).
		First(&out)
	return &out, res.Error
}

func (r *TransferRepository) ListByTenant(ctx context.Context, tenantID string) ([]transferDomain.Transfer, error) {
	var out []transferDomain.Transfer
	res := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}

func (r *TransferRepository) ListByReferenceForUpdate(ctx context.Context, tenantID, reference string) ([]transferDomain.Transfer, error) {
	var out []transferDomain.Transfer
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND reference = ?", tenantID, reference).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
