package mysql

import (
	"context"
	"time"

	approvalDomain "retail-backoffice/internal/domain/approval"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApprovalRequestRepository struct{ db *gorm.DB }

func NewApprovalRequestRepository(db *gorm.DB) *ApprovalRequestRepository {
	return &ApprovalRequestRepository{db: db}
}

func (r *ApprovalRequestRepository) Create(ctx context.Context, req *approvalDomain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *ApprovalRequestRepository) Save(ctx context.Context, req *approvalDomain.Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *ApprovalRequestRepository) GetByRequestID(ctx context.Context, tenantID, requestID string) (*approvalDomain.Request, error) {
	var out approvalDomain.Request
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND request_id = ?", tenantID, requestID).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRequestRepository) GetByRequestIDForUpdate(ctx context.Context, tenantID, requestID string) (*approvalDomain.Request, error) {
	var out approvalDomain.Request
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND request_id = ?", tenantID, requestID).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRequestRepository) GetByObject(ctx context.Context, tenantID string, objectType approvalDomain.ObjectType, objectID string) (*approvalDomain.Request, error) {
	var out approvalDomain.Request
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND object_type = ? AND object_id = ?", tenantID, objectType, objectID).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRequestRepository) ListPending(ctx context.Context, tenantID string) ([]approvalDomain.Request, error) {
	var out []approvalDomain.Request
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, approvalDomain.RequestPending).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

// ExpireDue is one status-guarded UPDATE: a request a concurrent decide has
// already resolved no longer matches the WHERE clause, so resolution stays
// exactly-once and re-running the sweep is a no-op.
func (r *ApprovalRequestRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&approvalDomain.Request{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", approvalDomain.RequestPending, now).
		Update("status", approvalDomain.RequestExpired)
	return res.RowsAffected, res.Error
}
