package transfers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/domain/approval"
	"retail-backoffice/internal/domain/audit"
	"retail-backoffice/internal/domain/catalog"
	"retail-backoffice/internal/domain/transfer"
	"retail-backoffice/internal/domain/uow"
	"retail-backoffice/internal/usecase/approvals"
	"retail-backoffice/internal/usecase/ledger"
	"retail-backoffice/internal/usecase/rules"
	seqgen "retail-backoffice/internal/usecase/sequence"
	"retail-backoffice/pkg/id"
	"retail-backoffice/pkg/metrics"

	"gorm.io/gorm"
)

// NumberPrefix is the sequence prefix for single transfer numbers.
const NumberPrefix = "TRF"

// Usecase drives one transfer through draft -> pending -> approved -> shipped
// -> completed, with rejected and cancelled reachable from non-terminal
// states. Source stock moves at ship, destination stock at complete; the gap
// between the two is the in-transit window.
type Usecase struct {
	tx       uow.UnitOfWork
	engine   *rules.Engine
	stock    *ledger.Ledger
	numbers  *seqgen.Generator
	catalog  catalog.Service
	recorder audit.Recorder
}

func NewUsecase(tx uow.UnitOfWork, engine *rules.Engine, stock *ledger.Ledger, numbers *seqgen.Generator, cat catalog.Service, rec audit.Recorder) *Usecase {
	return &Usecase{tx: tx, engine: engine, stock: stock, numbers: numbers, catalog: cat, recorder: rec}
}

type CreateInput struct {
	TenantID           string
	SourceStoreID      string
	DestinationStoreID string
	ProductID          string
	Quantity           int64
	UnitCost           float64
	RequestedBy        string
	Notes              string
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*transfer.Transfer, error) {
	if in.SourceStoreID == in.DestinationStoreID {
		return nil, apperr.Validation("source and destination stores must differ")
	}
	if in.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be positive")
	}
	if in.UnitCost < 0 {
		return nil, apperr.Validation("unit cost cannot be negative")
	}
	if err := u.checkStores(ctx, in.TenantID, in.SourceStoreID, in.DestinationStoreID); err != nil {
		return nil, err
	}
	ok, err := u.catalog.ProductExists(ctx, in.TenantID, in.ProductID)
	if err != nil {
		return nil, apperr.System(err)
	}
	if !ok {
		return nil, apperr.NotFound("product %s", in.ProductID)
	}

	var out *transfer.Transfer
	err = u.tx.WithinTx(ctx, func(r uow.Repos) error {
		number, err := u.numbers.Next(ctx, r.Sequences, in.TenantID, NumberPrefix)
		if err != nil {
			return err
		}
		t := &transfer.Transfer{
			TransferID:         id.NewID32(),
			TenantID:           in.TenantID,
			TransferNumber:     number,
			SourceStoreID:      in.SourceStoreID,
			DestinationStoreID: in.DestinationStoreID,
			ProductID:          in.ProductID,
			Quantity:           in.Quantity,
			UnitCost:           in.UnitCost,
			Status:             transfer.StatusDraft,
			RequestedBy:        in.RequestedBy,
			Notes:              in.Notes,
		}
		if err := r.Transfers.Create(ctx, t); err != nil {
			return apperr.System(err)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.record(ctx, out, in.RequestedBy, "transfer.created")
	return out, nil
}

// Submit moves draft -> pending and, when the tenant's rules require it, opens
// an approval request for the transfer's value inside the same transaction.
func (u *Usecase) Submit(ctx context.Context, tenantID, transferID, userID string) (*transfer.Transfer, error) {
	var out *transfer.Transfer
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		t, err := u.lock(ctx, r, tenantID, transferID)
		if err != nil {
			return err
		}
		if err := guard(t, transfer.StatusPending, "submit"); err != nil {
			return err
		}
		ev, err := u.engine.Evaluate(ctx, tenantID, approval.ObjectInventoryTransfer, rules.ActionData{"amount": t.Value()})
		if err != nil {
			return err
		}
		if ev.Required {
			req, err := approvals.NewRequest(approvals.CreateInput{
				TenantID:       tenantID,
				ObjectType:     approval.ObjectInventoryTransfer,
				ObjectID:       t.TransferID,
				Title:          fmt.Sprintf("Transfer %s approval", t.TransferNumber),
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
		t.Status = transfer.StatusPending
		if err := r.Transfers.Save(ctx, t); err != nil {
			return apperr.System(err)
		}
		out = t
		return nil
	})
	metrics.RecordTransition("submit", err)
	if err != nil {
		return nil, err
	}
	u.record(ctx, out, userID, "transfer.submitted")
	return out, nil
}

// Approve moves pending -> approved once the approval gate clears. If an
// approval request exists for the transfer it must have resolved approved; a
// pending request blocks, and any other resolution is final.
func (u *Usecase) Approve(ctx context.Context, tenantID, transferID, approverID string) (*transfer.Transfer, error) {
	var out *transfer.Transfer
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		t, err := u.lock(ctx, r, tenantID, transferID)
		if err != nil {
			return err
		}
		if err := guard(t, transfer.StatusApproved, "approve"); err != nil {
			return err
		}
		if err := u.gate(ctx, r, tenantID, t.TransferID, t.Value()); err != nil {
			return err
		}
		now := time.Now().UTC()
		t.Status = transfer.StatusApproved
		t.ApprovedBy = approverID
		t.ApprovedAt = &now
		if err := r.Transfers.Save(ctx, t); err != nil {
			return apperr.System(err)
		}
		out = t
		return nil
	})
	metrics.RecordTransition("approve", err)
	if err != nil {
		return nil, err
	}
	u.record(ctx, out, approverID, "transfer.approved")
	return out, nil
}

func (u *Usecase) Reject(ctx context.Context, tenantID, transferID, userID string) (*transfer.Transfer, error) {
	var out *transfer.Transfer
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		t, err := u.lock(ctx, r, tenantID, transferID)
		if err != nil {
			return err
		}
		if err := guard(t, transfer.StatusRejected, "reject"); err != nil {
			return err
		}
		t.Status = transfer.StatusRejected
		if err := r.Transfers.Save(ctx, t); err != nil {
			return apperr.System(err)
		}
		out = t
		return nil
	})
	metrics.RecordTransition("reject", err)
	if err != nil {
		return nil, err
	}
	u.record(ctx, out, userID, "transfer.rejected")
	return out, nil
}

// Ship moves approved -> shipped. Source stock is reserved and committed in
// the same transaction as the status flip; insufficient stock aborts the
// transition with the status unchanged.
func (u *Usecase) Ship(ctx context.Context, tenantID, transferID, userID string) (*transfer.Transfer, error) {
	var out *transfer.Transfer
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		t, err := u.lock(ctx, r, tenantID, transferID)
		if err != nil {
			return err
		}
		if err := guard(t, transfer.StatusShipped, "ship"); err != nil {
			return err
		}
		if err := u.stock.Reserve(ctx, r.Inventory, tenantID, t.SourceStoreID, t.ProductID, t.Quantity); err != nil {
			return err
		}
		if err := u.stock.Commit(ctx, r.Inventory, tenantID, t.SourceStoreID, t.ProductID, t.Quantity); err != nil {
			return err
		}
		t.Status = transfer.StatusShipped
		if err := r.Transfers.Save(ctx, t); err != nil {
			return apperr.System(err)
		}
		out = t
		return nil
	})
	metrics.RecordTransition("ship", err)
	if err != nil {
		return nil, err
	}
	u.record(ctx, out, userID, "transfer.shipped")
	return out, nil
}

// Complete moves shipped -> completed and receives the quantity at the
// destination store. This is the only point destination stock changes.
func (u *Usecase) Complete(ctx context.Context, tenantID, transferID, userID string) (*transfer.Transfer, error) {
	var out *transfer.Transfer
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		t, err := u.lock(ctx, r, tenantID, transferID)
		if err != nil {
			return err
		}
		if err := guard(t, transfer.StatusCompleted, "complete"); err != nil {
			return err
		}
		if err := u.stock.Receive(ctx, r.Inventory, tenantID, t.DestinationStoreID, t.ProductID, t.Quantity); err != nil {
			return err
		}
		t.Status = transfer.StatusCompleted
		if err := r.Transfers.Save(ctx, t); err != nil {
			return apperr.System(err)
		}
		out = t
		return nil
	})
	metrics.RecordTransition("complete", err)
	if err != nil {
		return nil, err
	}
	u.record(ctx, out, userID, "transfer.completed")
	return out, nil
}

func (u *Usecase) Cancel(ctx context.Context, tenantID, transferID, userID string) (*transfer.Transfer, error) {
	var out *transfer.Transfer
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		t, err := u.lock(ctx, r, tenantID, transferID)
		if err != nil {
			return err
		}
		if err := guard(t, transfer.StatusCancelled, "cancel"); err != nil {
			return err
		}
		t.Status = transfer.StatusCancelled
		if err := r.Transfers.Save(ctx, t); err != nil {
			return apperr.System(err)
		}
		out = t
		return nil
	})
	metrics.RecordTransition("cancel", err)
	if err != nil {
		return nil, err
	}
	u.record(ctx, out, userID, "transfer.cancelled")
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, tenantID, transferID string) (*transfer.Transfer, error) {
	var out *transfer.Transfer
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		t, err := r.Transfers.GetByTransferID(ctx, tenantID, transferID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("transfer %s", transferID)
			}
			return apperr.System(err)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) List(ctx context.Context, tenantID string) ([]transfer.Transfer, error) {
	var out []transfer.Transfer
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		ts, err := r.Transfers.ListByTenant(ctx, tenantID)
		if err != nil {
			return apperr.System(err)
		}
		out = ts
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) lock(ctx context.Context, r uow.Repos, tenantID, transferID string) (*transfer.Transfer, error) {
	t, err := r.Transfers.GetByTransferIDForUpdate(ctx, tenantID, transferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transfer %s", transferID)
		}
		return nil, apperr.System(err)
	}
	return t, nil
}

// gate enforces the approval requirement before an approve transition. The
// newest request for the object decides; with no request on file, the rules
// are re-evaluated so a rule added after submission still blocks.
func (u *Usecase) gate(ctx context.Context, r uow.Repos, tenantID, objectID string, amount float64) error {
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
	required, err := u.engine.IsApprovalRequired(ctx, tenantID, approval.ObjectInventoryTransfer, rules.ActionData{"amount": amount})
	if err != nil {
		return err
	}
	if required {
		return apperr.Conflict("approval is required; submit the transfer to open a request")
	}
	return nil
}

func guard(t *transfer.Transfer, to transfer.Status, action string) error {
	if !transfer.CanTransition(t.Status, to) {
		return apperr.InvalidTransition("cannot %s a %s transfer", action, t.Status)
	}
	return nil
}

func (u *Usecase) record(ctx context.Context, t *transfer.Transfer, userID, action string) {
	if u.recorder == nil || t == nil {
		return
	}
	u.recorder.Record(ctx, audit.Event{
		TenantID:    t.TenantID,
		UserID:      userID,
		Action:      action,
		ObjectTable: "inventory_transfers",
		ObjectID:    t.TransferID,
		Data:        map[string]any{"status": t.Status, "transfer_number": t.TransferNumber},
		OccurredAt:  time.Now().UTC(),
	})
}

func (u *Usecase) checkStores(ctx context.Context, tenantID string, storeIDs ...string) error {
	for _, sid := range storeIDs {
		ok, err := u.catalog.StoreExists(ctx, tenantID, sid)
		if err != nil {
			return apperr.System(err)
		}
		if !ok {
			return apperr.NotFound("store %s", sid)
		}
	}
	return nil
}
