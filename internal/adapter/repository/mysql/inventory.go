package mysql

import (
	"context"

	invDomain "retail-backoffice/internal/domain/inventory"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) *InventoryRepository { return &InventoryRepository{db: db} }

func (r *InventoryRepository) Create(ctx context.Context, rec *invDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *InventoryRepository) Save(ctx context.Context, rec *invDomain.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *InventoryRepository) Get(ctx context.Context, tenantID, storeID, productID string) (*invDomain.Record, error) {
	var out invDomain.Record
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND store_id = ? AND product_id = ? AND status = ?",
			tenantID, storeID, productID, invDomain.StatusActive).
		First(&out)
	return &out, res.Error
}

func (r *InventoryRepository) GetForUpdate(ctx context.Context, tenantID, storeID, productID string) (*invDomain.Record, error) {
	var out invDomain.Record
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND store_id = ? AND product_id = ? AND status = ?",
			tenantID, storeID, productID, invDomain.StatusActive).
		First(&out)
	return &out, res.Error
}

func (r *InventoryRepository) ListByStore(ctx context.Context, tenantID, storeID string) ([]invDomain.Record, error) {
	var out []invDomain.Record
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND store_id = ? AND status = ?", tenantID, storeID, invDomain.StatusActive).
		Order("product_id ASC").
		Find(&out)
	return out, res.Error
}
