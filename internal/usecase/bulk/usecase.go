package bulk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/domain/approval"
	"retail-backoffice/internal/domain/audit"
	"retail-backoffice/internal/domain/bulktransfer"
	"retail-backoffice/internal/domain/catalog"
	"retail-backoffice/internal/domain/inventory"
	"retail-backoffice/internal/domain/transfer"
	"retail-backoffice/internal/domain/uow"
	"retail-backoffice/internal/usecase/approvals"
	"retail-backoffice/internal/usecase/rules"
	seqgen "retail-backoffice/internal/usecase/sequence"
	"retail-backoffice/internal/usecase/transfers"
	"retail-backoffice/pkg/id"
	"retail-backoffice/pkg/metrics"

	"gorm.io/gorm"
)

// NumberPrefix is the sequence prefix for bulk transfer numbers.
const NumberPrefix = "BTR"

// Orchestrator owns the bulk transfer lifecycle. Its defining behavior is the
// fan-out on approval: one approved header produces one independently
// progressing child transfer per line item.
type Orchestrator struct {
	tx       uow.UnitOfWork
	engine   *rules.Engine
	numbers  *seqgen.Generator
	catalog  catalog.Service
	recorder audit.Recorder
}

func NewOrchestrator(tx uow.UnitOfWork, engine *rules.Engine, numbers *seqgen.Generator, cat catalog.Service, rec audit.Recorder) *Orchestrator {
	return &Orchestrator{tx: tx, engine: engine, numbers: numbers, catalog: cat, recorder: rec}
}

type ItemInput struct {
	ProductID string
	Quantity  int64
	UnitCost  float64
}

type CreateInput struct {
	TenantID           string
	SourceStoreID      string
	DestinationStoreID string
	Title              string
	Priority           bulktransfer.Priority
	TransferType       bulktransfer.TransferType
	RequestedBy        string
	Notes              string
	Items              []ItemInput
}

// Create validates the request and persists header plus items atomically. The
// availability check covers every line item inside the same transaction; the
// header totals are derived from the items, never taken from the caller.
func (o *Orchestrator) Create(ctx context.Context, in CreateInput) (*bulktransfer.BulkTransfer, error) {
	if err := o.validateCreate(ctx, &in); err != nil {
		return nil, err
	}
	var out *bulktransfer.BulkTransfer
	err := o.tx.WithinTx(ctx, func(r uow.Repos) error {
		if err := o.checkAvailability(ctx, r.Inventory, in); err != nil {
			return err
		}
		number, err := o.numbers.Next(ctx, r.Sequences, in.TenantID, NumberPrefix)
		if err != nil {
			return err
		}
		b := &bulktransfer.BulkTransfer{
			BulkTransferID:     id.NewID32(),
			TenantID:           in.TenantID,
			BulkTransferNumber: number,
			SourceStoreID:      in.SourceStoreID,
			DestinationStoreID: in.DestinationStoreID,
			Title:              in.Title,
			Status:             bulktransfer.StatusDraft,
			Priority:           in.Priority,
			TransferType:       in.TransferType,
			RequestedBy:        in.RequestedBy,
			Notes:              in.Notes,
		}
		for _, it := range in.Items {
			b.Items = append(b.Items, bulktransfer.Item{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitCost:  it.UnitCost,
			})
		}
		b.RecomputeTotals()
		if err := r.BulkTransfers.Create(ctx, b); err != nil {
			return apperr.System(err)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.record(ctx, out, in.RequestedBy, "bulk_transfer.created")
	return out, nil
}

// Submit moves draft -> pending, opening an approval request for the header's
// aggregate value when the tenant's rules require one.
func (o *Orchestrator) Submit(ctx context.Context, tenantID, bulkID, userID string) (*bulktransfer.BulkTransfer, error) {
	var out *bulktransfer.BulkTransfer
	err := o.tx.WithinTx(ctx, func(r uow.Repos) error {
		b, err := o.lock(ctx, r, tenantID, bulkID)
		if err != nil {
			return err
		}
		if b.Status != bulktransfer.StatusDraft {
			return apperr.InvalidTransition("cannot submit a %s bulk transfer", b.Status)
		}
		ev, err := o.engine.Evaluate(ctx, tenantID, approval.ObjectInventoryTransfer, rules.ActionData{"amount": b.TotalValue})
		if err != nil {
			return err
		}
		if ev.Required {
			req, err := approvals.NewRequest(approvals.CreateInput{
				TenantID:       tenantID,
				ObjectType:     approval.ObjectInventoryTransfer,
				ObjectID:       b.BulkTransferID,
				Title:          fmt.Sprintf("Bulk transfer %s approval", b.BulkTransferNumber),
				Priority:       string(b.Priority),
				RequestedBy:    userID,
				Levels:         ev.Levels,
				ExpiresInHours: ev.ExpiresInHours,
			})
			if err != nil {
				return err
			}
			if err := r.Requests.Create(ctx, req); err != nil {
				return apperr.System(err)
			}
		}
		b.Status = bulktransfer.StatusPending
		if err := r.BulkTransfers.Save(ctx, b); err != nil {
			return apperr.System(err)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.record(ctx, out, userID, "bulk_transfer.submitted")
	return out, nil
}

// Approve moves pending -> approved and fans out one child transfer per line
// item, each already approved, numbered by the sequence generator, and tagged
// with the bulk transfer number as its reference.
func (o *Orchestrator) Approve(ctx context.Context, tenantID, bulkID, approverID string) (*bulktransfer.BulkTransfer, error) {
	var out *bulktransfer.BulkTransfer
	var children int
	err := o.tx.WithinTx(ctx, func(r uow.Repos) error {
		b, err := o.lock(ctx, r, tenantID, bulkID)
		if err != nil {
			return err
		}
		if b.Status != bulktransfer.StatusPending {
			return apperr.InvalidTransition("cannot approve a %s bulk transfer", b.Status)
		}
		if err := o.gate(ctx, r, tenantID, b.BulkTransferID, b.TotalValue); err != nil {
			return err
		}
		now := time.Now().UTC()
		for _, it := range b.Items {
			number, err := o.numbers.Next(ctx, r.Sequences, tenantID, transfers.NumberPrefix)
			if err != nil {
				return err
			}
			child := &transfer.Transfer{
				TransferID:         id.NewID32(),
				TenantID:           tenantID,
				TransferNumber:     number,
				SourceStoreID:      b.SourceStoreID,
				DestinationStoreID: b.DestinationStoreID,
				ProductID:          it.ProductID,
				Quantity:           it.Quantity,
				UnitCost:           it.UnitCost,
				Status:             transfer.StatusApproved,
				RequestedBy:        b.RequestedBy,
				ApprovedBy:         approverID,
				ApprovedAt:         &now,
				Reference:          b.BulkTransferNumber,
			}
			if err := r.Transfers.Create(ctx, child); err != nil {
				return apperr.System(err)
			}
		}
		children = len(b.Items)
		b.Status = bulktransfer.StatusApproved
		b.ApprovedBy = approverID
		b.ApprovedAt = &now
		if err := r.BulkTransfers.Save(ctx, b); err != nil {
			return apperr.System(err)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.BulkFanoutChildren.Add(float64(children))
	o.record(ctx, out, approverID, "bulk_transfer.approved")
	return out, nil
}

// Cancel withdraws a bulk transfer from draft, pending, or approved. Once
// children exist, any still in draft, pending, or approved are cancelled with
// the header; shipped or completed children stay untouched because physical
// movement cannot be undone by a status flip.
func (o *Orchestrator) Cancel(ctx context.Context, tenantID, bulkID, userID string) (*bulktransfer.BulkTransfer, error) {
	var out *bulktransfer.BulkTransfer
	err := o.tx.WithinTx(ctx, func(r uow.Repos) error {
		b, err := o.lock(ctx, r, tenantID, bulkID)
		if err != nil {
			return err
		}
		switch b.Status {
		case bulktransfer.StatusDraft, bulktransfer.StatusPending, bulktransfer.StatusApproved:
		default:
			return apperr.InvalidTransition("cannot cancel a %s bulk transfer", b.Status)
		}
		if b.Status == bulktransfer.StatusApproved {
			children, err := r.Transfers.ListByReferenceForUpdate(ctx, tenantID, b.BulkTransferNumber)
			if err != nil {
				return apperr.System(err)
			}
			for i := range children {
				c := &children[i]
				if !transfer.CanTransition(c.Status, transfer.StatusCancelled) {
					continue
				}
				c.Status = transfer.StatusCancelled
				if err := r.Transfers.Save(ctx, c); err != nil {
					return apperr.System(err)
				}
			}
		}
		b.Status = bulktransfer.StatusCancelled
		if err := r.BulkTransfers.Save(ctx, b); err != nil {
			return apperr.System(err)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.record(ctx, out, userID, "bulk_transfer.cancelled")
	return out, nil
}

func (o *Orchestrator) Get(ctx context.Context, tenantID, bulkID string) (*bulktransfer.BulkTransfer, error) {
	var out *bulktransfer.BulkTransfer
	err := o.tx.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.BulkTransfers.GetByBulkTransferID(ctx, tenantID, bulkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("bulk transfer %s", bulkID)
			}
			return apperr.System(err)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *Orchestrator) List(ctx context.Context, tenantID string) ([]bulktransfer.BulkTransfer, error) {
	var out []bulktransfer.BulkTransfer
	err := o.tx.WithinTx(ctx, func(r uow.Repos) error {
		bs, err := r.BulkTransfers.ListByTenant(ctx, tenantID)
		if err != nil {
			return apperr.System(err)
		}
		out = bs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *Orchestrator) validateCreate(ctx context.Context, in *CreateInput) error {
	if in.SourceStoreID == in.DestinationStoreID {
		return apperr.Validation("source and destination stores must differ")
	}
	if in.Title == "" {
		return apperr.Validation("title is required")
	}
	if len(in.Items) == 0 {
		return apperr.Validation("at least one line item is required")
	}
	if in.Priority == "" {
		in.Priority = bulktransfer.PriorityNormal
	}
	if !bulktransfer.ValidPriority(in.Priority) {
		return apperr.Validation("unknown priority %q", in.Priority)
	}
	if in.TransferType == "" {
		in.TransferType = bulktransfer.TypeReplenishment
	}
	if !bulktransfer.ValidTransferType(in.TransferType) {
		return apperr.Validation("unknown transfer type %q", in.TransferType)
	}
	for _, sid := range []string{in.SourceStoreID, in.DestinationStoreID} {
		ok, err := o.catalog.StoreExists(ctx, in.TenantID, sid)
		if err != nil {
			return apperr.System(err)
		}
		if !ok {
			return apperr.NotFound("store %s", sid)
		}
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return apperr.Validation("item %s: quantity must be positive", it.ProductID)
		}
		if it.UnitCost < 0 {
			return apperr.Validation("item %s: unit cost cannot be negative", it.ProductID)
		}
		ok, err := o.catalog.ProductExists(ctx, in.TenantID, it.ProductID)
		if err != nil {
			return apperr.System(err)
		}
		if !ok {
			return apperr.NotFound("product %s", it.ProductID)
		}
	}
	return nil
}

// checkAvailability verifies source-store stock covers every line item,
// aggregating lines that share a product. Rows are locked so a concurrent
// mutation cannot invalidate the check before the enclosing commit.
func (o *Orchestrator) checkAvailability(ctx context.Context, repo inventory.Repository, in CreateInput) error {
	required := map[string]int64{}
	order := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		if _, seen := required[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		required[it.ProductID] += it.Quantity
	}
	for _, productID := range order {
		rec, err := repo.GetForUpdate(ctx, in.TenantID, in.SourceStoreID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Conflict("insufficient stock: no stock on record for product %s", productID)
			}
			return apperr.System(err)
		}
		if rec.QuantityAvailable < required[productID] {
			return apperr.Conflict("insufficient stock for product %s: available %d, requested %d",
				productID, rec.QuantityAvailable, required[productID])
		}
	}
	return nil
}

func (o *Orchestrator) lock(ctx context.Context, r uow.Repos, tenantID, bulkID string) (*bulktransfer.BulkTransfer, error) {
	b, err := r.BulkTransfers.GetByBulkTransferIDForUpdate(ctx, tenantID, bulkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("bulk transfer %s", bulkID)
		}
		return nil, apperr.System(err)
	}
	return b, nil
}

func (o *Orchestrator) gate(ctx context.Context, r uow.Repos, tenantID, objectID string, amount float64) error {
	req, err := r.Requests.GetByObject(ctx, tenantID, approval.ObjectInventoryTransfer, objectID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.System(err)
	}
	if req != nil && err == nil {
		switch req.Status {
		case approval.RequestApproved:
			return nil
		case approval.RequestPending:
			return apperr.Conflict("approval request %s is still pending", req.RequestID)
		default:
			return apperr.Conflict("approval request %s resolved %s", req.RequestID, req.Status)
		}
	}
	required, err := o.engine.IsApprovalRequired(ctx, tenantID, approval.ObjectInventoryTransfer, rules.ActionData{"amount": amount})
	if err != nil {
		return err
	}
	if required {
		return apperr.Conflict("approval is required; submit the bulk transfer to open a request")
	}
	return nil
}

func (o *Orchestrator) record(ctx context.Context, b *bulktransfer.BulkTransfer, userID, action string) {
	if o.recorder == nil || b == nil {
		return
	}
	o.recorder.Record(ctx, audit.Event{
		TenantID:    b.TenantID,
		UserID:      userID,
		Action:      action,
		ObjectTable: "bulk_inventory_transfers",
		ObjectID:    b.BulkTransferID,
		Data:        map[string]any{"status": b.Status, "bulk_transfer_number": b.BulkTransferNumber},
		OccurredAt:  time.Now().UTC(),
	})
}
