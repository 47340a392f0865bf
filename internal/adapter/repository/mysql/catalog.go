package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// The transfer engine only needs existence checks against the catalog and
// store subsystems, so the rows are modeled with just the scoping columns.

type productRow struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	ProductID string    `gorm:"size:32;not null;uniqueIndex:ux_products_tenant_product,priority:2"`
	TenantID  string    `gorm:"size:32;not null;uniqueIndex:ux_products_tenant_product,priority:1"`
	Name      string    `gorm:"size:255"`
	Status    string    `gorm:"size:16;not null;default:'active'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (productRow) TableName() string { return "products" }

type storeRow struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	StoreID   string    `gorm:"size:32;not null;uniqueIndex:ux_stores_tenant_store,priority:2"`
	TenantID  string    `gorm:"size:32;not null;uniqueIndex:ux_stores_tenant_store,priority:1"`
	Name      string    `gorm:"size:255"`
	Status    string    `gorm:"size:16;not null;default:'active'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (storeRow) TableName() string { return "stores" }

type CatalogRepository struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{db: db} }

func (r *CatalogRepository) ProductExists(ctx context.Context, tenantID, productID string) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&productRow{}).
		Where("tenant_id = ? AND product_id = ? AND status = 'active'", tenantID, productID).
		Count(&n)
	return n > 0, res.Error
}

func (r *CatalogRepository) StoreExists(ctx context.Context, tenantID, storeID string) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&storeRow{}).
		Where("tenant_id = ? AND store_id = ? AND status = 'active'", tenantID, storeID).
		Count(&n)
	return n > 0, res.Error
}
