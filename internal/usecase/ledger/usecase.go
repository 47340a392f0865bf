package ledger

import (
	"context"
	"errors"
	"time"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/domain/audit"
	"retail-backoffice/internal/domain/inventory"
	"retail-backoffice/internal/domain/uow"
	"retail-backoffice/pkg/metrics"

	"gorm.io/gorm"
)

// Ledger owns the four stock primitives. Every method operates on a
// transaction-bound repository supplied by the caller, locks the inventory
// row first, and either applies the full quantity or fails without touching
// it. The quantity_available = on_hand - reserved invariant is re-derived on
// every mutation.
type Ledger struct{}

func NewLedger() *Ledger { return &Ledger{} }

// Reserve places a hold on available stock.
func (l *Ledger) Reserve(ctx context.Context, repo inventory.Repository, tenantID, storeID, productID string, qty int64) error {
	if qty <= 0 {
		return apperr.Validation("quantity must be positive")
	}
	rec, err := l.lock(ctx, repo, tenantID, storeID, productID, "reserve")
	if err != nil {
		return err
	}
	if rec.QuantityAvailable < qty {
		metrics.LedgerConflictsTotal.WithLabelValues("reserve").Inc()
		return apperr.Conflict("insufficient stock: available %d, requested %d", rec.QuantityAvailable, qty)
	}
	rec.QuantityReserved += qty
	rec.Recompute()
	if err := repo.Save(ctx, rec); err != nil {
		return apperr.System(err)
	}
	return nil
}

// Release returns a previously reserved quantity to availability.
func (l *Ledger) Release(ctx context.Context, repo inventory.Repository, tenantID, storeID, productID string, qty int64) error {
	if qty <= 0 {
		return apperr.Validation("quantity must be positive")
	}
	rec, err := l.lock(ctx, repo, tenantID, storeID, productID, "release")
	if err != nil {
		return err
	}
	if rec.QuantityReserved < qty {
		metrics.LedgerConflictsTotal.WithLabelValues("release").Inc()
		return apperr.Conflict("release exceeds reservation: reserved %d, requested %d", rec.QuantityReserved, qty)
	}
	rec.QuantityReserved -= qty
	rec.Recompute()
	if err := repo.Save(ctx, rec); err != nil {
		return apperr.System(err)
	}
	return nil
}

// Commit converts a reservation into a permanent on-hand decrease.
func (l *Ledger) Commit(ctx context.Context, repo inventory.Repository, tenantID, storeID, productID string, qty int64) error {
	if qty <= 0 {
		return apperr.Validation("quantity must be positive")
	}
	rec, err := l.lock(ctx, repo, tenantID, storeID, productID, "commit")
	if err != nil {
		return err
	}
	if rec.QuantityReserved < qty || rec.QuantityOnHand < qty {
		metrics.LedgerConflictsTotal.WithLabelValues("commit").Inc()
		return apperr.Conflict("commit exceeds reservation: reserved %d, on hand %d, requested %d",
			rec.QuantityReserved, rec.QuantityOnHand, qty)
	}
	rec.QuantityReserved -= qty
	rec.QuantityOnHand -= qty
	rec.Recompute()
	if err := repo.Save(ctx, rec); err != nil {
		return apperr.System(err)
	}
	return nil
}

// Receive increases on-hand stock at the destination, creating the inventory
// record on first receipt.
func (l *Ledger) Receive(ctx context.Context, repo inventory.Repository, tenantID, storeID, productID string, qty int64) error {
	if qty <= 0 {
		return apperr.Validation("quantity must be positive")
	}
	rec, err := repo.GetForUpdate(ctx, tenantID, storeID, productID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.System(err)
		}
		rec = &inventory.Record{
			TenantID:       tenantID,
			StoreID:        storeID,
			ProductID:      productID,
			QuantityOnHand: qty,
			Status:         inventory.StatusActive,
		}
		rec.Recompute()
		if err := repo.Create(ctx, rec); err != nil {
			return apperr.System(err)
		}
		return nil
	}
	rec.QuantityOnHand += qty
	rec.Recompute()
	if err := repo.Save(ctx, rec); err != nil {
		return apperr.System(err)
	}
	return nil
}

func (l *Ledger) lock(ctx context.Context, repo inventory.Repository, tenantID, storeID, productID, op string) (*inventory.Record, error) {
	rec, err := repo.GetForUpdate(ctx, tenantID, storeID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.LedgerConflictsTotal.WithLabelValues(op).Inc()
			return nil, apperr.Conflict("no stock on record for product %s at store %s", productID, storeID)
		}
		return nil, apperr.System(err)
	}
	return rec, nil
}

// Service exposes the ledger's read paths and the stock-receipt intake over
// the unit of work.
type Service struct {
	tx       uow.UnitOfWork
	ledger   *Ledger
	levels   inventory.Repository
	recorder audit.Recorder
}

func NewService(tx uow.UnitOfWork, l *Ledger, levels inventory.Repository, rec audit.Recorder) *Service {
	return &Service{tx: tx, ledger: l, levels: levels, recorder: rec}
}

type ReceiptInput struct {
	TenantID   string
	StoreID    string
	ProductID  string
	Quantity   int64
	ReceivedBy string
}

func (s *Service) ReceiveStock(ctx context.Context, in ReceiptInput) (*inventory.Record, error) {
	if in.StoreID == "" || in.ProductID == "" {
		return nil, apperr.Validation("store and product ids are required")
	}
	var out *inventory.Record
	err := s.tx.WithinTx(ctx, func(r uow.Repos) error {
		if err := s.ledger.Receive(ctx, r.Inventory, in.TenantID, in.StoreID, in.ProductID, in.Quantity); err != nil {
			return err
		}
		rec, err := r.Inventory.Get(ctx, in.TenantID, in.StoreID, in.ProductID)
		if err != nil {
			return apperr.System(err)
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.Record(ctx, audit.Event{
			TenantID:    in.TenantID,
			UserID:      in.ReceivedBy,
			Action:      "inventory.received",
			ObjectTable: "inventory_records",
			ObjectID:    in.ProductID,
			Data:        map[string]any{"store_id": in.StoreID, "quantity": in.Quantity},
			OccurredAt:  time.Now().UTC(),
		})
	}
	return out, nil
}

func (s *Service) ListLevels(ctx context.Context, tenantID, storeID string) ([]inventory.Record, error) {
	if storeID == "" {
		return nil, apperr.Validation("store id is required")
	}
	out, err := s.levels.ListByStore(ctx, tenantID, storeID)
	if err != nil {
		return nil, apperr.System(err)
	}
	return out, nil
}
