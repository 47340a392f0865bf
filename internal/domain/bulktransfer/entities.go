package bulktransfer

import (
	"time"
)

type Status string

const (
	StatusDraft             Status = "draft"
	StatusPending           Status = "pending"
	StatusApproved          Status = "approved"
	StatusPartiallyShipped  Status = "partially_shipped"
	StatusShipped           Status = "shipped"
	StatusPartiallyReceived Status = "partially_received"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"
	StatusRejected          Status = "rejected"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type TransferType string

const (
	TypeReplenishment TransferType = "replenishment"
	TypeAllocation    TransferType = "allocation"
	TypeReturn        TransferType = "return"
	TypeAdjustment    TransferType = "adjustment"
	TypeEmergency     TransferType = "emergency"
)

func ValidTransferType(t TransferType) bool {
	switch t {
	case TypeReplenishment, TypeAllocation, TypeReturn, TypeAdjustment, TypeEmergency:
		return true
	}
	return false
}

// BulkTransfer is a single approval-and-tracking unit owning 1..N line items.
// Totals are derived from the items at creation and never accepted as input.
type BulkTransfer struct {
	ID                 uint64       `gorm:"primaryKey;column:id" json:"-"`
	BulkTransferID     string       `gorm:"size:32;not null;uniqueIndex:ux_bulk_transfers_id" json:"bulk_transfer_id"`
	TenantID           string       `gorm:"size:32;not null;index:idx_bulk_transfers_tenant;uniqueIndex:ux_bulk_transfers_tenant_number,priority:1" json:"tenant_id"`
	BulkTransferNumber string       `gorm:"size:64;not null;uniqueIndex:ux_bulk_transfers_tenant_number,priority:2" json:"bulk_transfer_number"`
	SourceStoreID      string       `gorm:"size:32;not null" json:"source_store_id"`
	DestinationStoreID string       `gorm:"size:32;not null" json:"destination_store_id"`
	Title              string       `gorm:"size:255;not null" json:"title"`
	Status             Status       `gorm:"size:24;not null;default:'draft';index" json:"status"`
	Priority           Priority     `gorm:"size:16;not null;default:'normal'" json:"priority"`
	TransferType       TransferType `gorm:"size:24;not null;default:'replenishment'" json:"transfer_type"`
	RequestedBy        string       `gorm:"size:32;not null" json:"requested_by"`
	ApprovedBy         string       `gorm:"size:32" json:"approved_by,omitempty"`
	ApprovedAt         *time.Time   `json:"approved_at,omitempty"`
	TotalItems         int          `gorm:"not null;default:0" json:"total_items"`
	TotalQuantity      int64        `gorm:"not null;default:0" json:"total_quantity"`
	TotalValue         float64      `gorm:"type:decimal(18,2);not null;default:0" json:"total_value"`
	Notes              string       `gorm:"type:text" json:"notes,omitempty"`
	Items              []Item       `gorm:"foreignKey:BulkTransferRef;references:ID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt          time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BulkTransfer) TableName() string { return "bulk_inventory_transfers" }

// Item is one product line within a bulk transfer. LineTotal = UnitCost * Quantity.
type Item struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"-"`
	BulkTransferRef uint64    `gorm:"column:bulk_transfer_ref;not null;index" json:"-"`
	ProductID       string    `gorm:"size:32;not null" json:"product_id"`
	Quantity        int64     `gorm:"not null" json:"quantity"`
	UnitCost        float64   `gorm:"type:decimal(18,2);not null;default:0" json:"unit_cost"`
	LineTotal       float64   `gorm:"type:decimal(18,2);not null;default:0" json:"line_total"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Item) TableName() string { return "bulk_inventory_transfer_items" }

// RecomputeTotals derives the header totals from the line items.
func (b *BulkTransfer) RecomputeTotals() {
	b.TotalItems = len(b.Items)
	b.TotalQuantity = 0
	b.TotalValue = 0
	for i := range b.Items {
		it := &b.Items[i]
		it.LineTotal = float64(it.Quantity) * it.UnitCost
		b.TotalQuantity += it.Quantity
		b.TotalValue += it.LineTotal
	}
}
