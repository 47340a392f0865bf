package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// userRoleRow is the narrow projection of the user/role subsystem the
// approval engine depends on: one row per (user, role) membership.
type userRoleRow struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	TenantID  string    `gorm:"size:32;not null;index:idx_user_roles_tenant_role,priority:1"`
	UserID    string    `gorm:"size:32;not null;index:idx_user_roles_user"`
	Role      string    `gorm:"size:64;not null;index:idx_user_roles_tenant_role,priority:2"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (userRoleRow) TableName() string { return "user_roles" }

type DirectoryRepository struct{ db *gorm.DB }

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository { return &DirectoryRepository{db: db} }

func (r *DirectoryRepository) FindEligibleApprovers(ctx context.Context, tenantID string, roles []string) ([]string, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	var ids []string
	res := r.db.WithContext(ctx).Model(&userRoleRow{}).
		Distinct("user_id").
		Where("tenant_id = ? AND role IN ? AND active = ?", tenantID, roles, true).
		Order("user_id ASC").
		Pluck("user_id", &ids)
	return ids, res.Error
}

func (r *DirectoryRepository) IsMember(ctx context.Context, tenantID, userID string, roles []string) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}
	var n int64
	res := r.db.WithContext(ctx).Model(&userRoleRow{}).
		Where("tenant_id = ? AND user_id = ? AND role IN ? AND active = ?", tenantID, userID, roles, true).
		Count(&n)
	return n > 0, res.Error
}
