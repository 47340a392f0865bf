package mysql

import (
	"retail-backoffice/internal/domain/approval"
	"retail-backoffice/internal/domain/bulktransfer"
	"retail-backoffice/internal/domain/inventory"
	"retail-backoffice/internal/domain/sequence"
	"retail-backoffice/internal/domain/transfer"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the core owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&inventory.Record{},
		&transfer.Transfer{},
		&bulktransfer.BulkTransfer{},
		&bulktransfer.Item{},
		&approval.Rule{},
		&approval.Request{},
		&sequence.Counter{},
		&productRow{},
		&storeRow{},
		&userRoleRow{},
	)
}
