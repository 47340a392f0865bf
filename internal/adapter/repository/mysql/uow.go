package mysql

import (
	"context"

	"retail-backoffice/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Inventory:     &InventoryRepository{db: tx},
			Transfers:     &TransferRepository{db: tx},
			BulkTransfers: &BulkTransferRepository{db: tx},
			Rules:         &ApprovalRuleRepository{db: tx},
			Requests:      &ApprovalRequestRepository{db: tx},
			Sequences:     &SequenceRepository{db: tx},
		}
		return fn(r)
	})
}
