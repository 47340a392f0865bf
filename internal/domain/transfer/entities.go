package transfer

import (
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Transfer moves a fixed quantity of one product from a source store to a
// destination store within a tenant. Reference links a fanned-out child back
// to its parent bulk transfer number.
type Transfer struct {
	ID                 uint64     `gorm:"primaryKey;column:id" json:"-"`
	TransferID         string     `gorm:"size:32;not null;uniqueIndex:ux_transfers_transfer_id" json:"transfer_id"`
	TenantID           string     `gorm:"size:32;not null;index:idx_transfers_tenant;uniqueIndex:ux_transfers_tenant_number,priority:1" json:"tenant_id"`
	TransferNumber     string     `gorm:"size:64;not null;uniqueIndex:ux_transfers_tenant_number,priority:2" json:"transfer_number"`
	SourceStoreID      string     `gorm:"size:32;not null" json:"source_store_id"`
	DestinationStoreID string     `gorm:"size:32;not null" json:"destination_store_id"`
	ProductID          string     `gorm:"size:32;not null" json:"product_id"`
	Quantity           int64      `gorm:"not null" json:"quantity"`
	UnitCost           float64    `gorm:"type:decimal(18,2)" json:"unit_cost"`
	Status             Status     `gorm:"size:16;not null;default:'draft';index" json:"status"`
	RequestedBy        string     `gorm:"size:32;not null" json:"requested_by"`
	ApprovedBy         string     `gorm:"size:32" json:"approved_by,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	Reference          string     `gorm:"size:64;index" json:"reference,omitempty"`
	Notes              string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Transfer) TableName() string { return "inventory_transfers" }

// Value is the transfer's monetary worth, used by the approval rule bounds.
func (t *Transfer) Value() float64 { return float64(t.Quantity) * t.UnitCost }

// transitions maps a target status to the statuses it may be entered from.
var transitions = map[Status][]Status{
	StatusPending:   {StatusDraft},
	StatusApproved:  {StatusPending},
	StatusShipped:   {StatusApproved},
	StatusCompleted: {StatusShipped},
	StatusRejected:  {StatusPending},
	StatusCancelled: {StatusDraft, StatusPending, StatusApproved},
}

// CanTransition reports whether moving from -> to is a legal lifecycle step.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[to] {
		if s == from {
			return true
		}
	}
	return false
}
