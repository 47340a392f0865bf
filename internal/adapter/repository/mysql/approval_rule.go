package mysql

import (
	"context"

	approvalDomain "retail-backoffice/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRuleRepository struct{ db *gorm.DB }

func NewApprovalRuleRepository(db *gorm.DB) *ApprovalRuleRepository {
	return &ApprovalRuleRepository{db: db}
}

func (r *ApprovalRuleRepository) Create(ctx context.Context, rule *approvalDomain.Rule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ApprovalRuleRepository) Save(ctx context.Context, rule *approvalDomain.Rule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *ApprovalRuleRepository) GetByRuleID(ctx context.Context, tenantID, ruleID string) (*approvalDomain.Rule, error) {
	var out approvalDomain.Rule
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND rule_id = ?", tenantID, ruleID).
		First(&out)
	return &out, res.Error
}

// ListActive orders by most recently updated first; the evaluation tie-break
// between rules matching the same object type depends on this ordering.
func (r *ApprovalRuleRepository) ListActive(ctx context.Context, tenantID string, objectType approvalDomain.ObjectType) ([]approvalDomain.Rule, error) {
	var out []approvalDomain.Rule
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND object_type = ? AND active = ?", tenantID, objectType, true).
		Order("updated_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ApprovalRuleRepository) ListByTenant(ctx context.Context, tenantID string) ([]approvalDomain.Rule, error) {
	var out []approvalDomain.Rule
	res := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}
