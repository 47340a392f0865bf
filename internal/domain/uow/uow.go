package uow

import (
	"context"

	"retail-backoffice/internal/domain/approval"
	"retail-backoffice/internal/domain/bulktransfer"
	"retail-backoffice/internal/domain/inventory"
	"retail-backoffice/internal/domain/sequence"
	"retail-backoffice/internal/domain/transfer"
)

// Repos bundles every repository bound to one shared transaction.
type Repos struct {
	Inventory     inventory.Repository
	Transfers     transfer.Repository
	BulkTransfers bulktransfer.Repository
	Rules         approval.RuleRepository
	Requests      approval.RequestRepository
	Sequences     sequence.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside one transaction; everything commits or nothing
	// does.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
