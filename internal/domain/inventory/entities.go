package inventory

import (
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Record tracks stock for one (tenant, store, product). Quantities are mutated
// only through the ledger primitives; QuantityAvailable is always
// QuantityOnHand - QuantityReserved with both components >= 0.
type Record struct {
	ID                uint64    `gorm:"primaryKey;column:id" json:"-"`
	TenantID          string    `gorm:"size:32;not null;uniqueIndex:ux_inventory_tenant_store_product,priority:1" json:"tenant_id"`
	StoreID           string    `gorm:"size:32;not null;uniqueIndex:ux_inventory_tenant_store_product,priority:2" json:"store_id"`
	ProductID         string    `gorm:"size:32;not null;uniqueIndex:ux_inventory_tenant_store_product,priority:3" json:"product_id"`
	QuantityOnHand    int64     `gorm:"not null;default:0" json:"quantity_on_hand"`
	QuantityReserved  int64     `gorm:"not null;default:0" json:"quantity_reserved"`
	QuantityAvailable int64     `gorm:"not null;default:0" json:"quantity_available"`
	ReorderPoint      int64     `gorm:"not null;default:0" json:"reorder_point"`
	ReorderQuantity   int64     `gorm:"not null;default:0" json:"reorder_quantity"`
	Status            Status    `gorm:"size:16;not null;default:'active'" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Record) TableName() string { return "inventory_records" }

// Recompute re-derives the available quantity from its components.
func (r *Record) Recompute() { r.QuantityAvailable = r.QuantityOnHand - r.QuantityReserved }
