package mysql

import (
	"context"
	"fmt"

	seqDomain "retail-backoffice/internal/domain/sequence"

	"gorm.io/gorm"
)

type SequenceRepository struct{ db *gorm.DB }

func NewSequenceRepository(db *gorm.DB) *SequenceRepository { return &SequenceRepository{db: db} }

// Increment bumps the (tenant, prefix, day) counter with a single guarded
// UPDATE; the row stays locked for the rest of the caller's transaction. The
// first caller of a day races on the insert, in which case the loser falls
// back to the update path once.
func (r *SequenceRepository) Increment(ctx context.Context, tenantID, prefix, day string) (int64, error) {
	for attempt := 0; attempt < 2; attempt++ {
		res := r.db.WithContext(ctx).
			Model(&seqDomain.Counter{}).
			Where("tenant_id = ? AND prefix = ? AND day = ?", tenantID, prefix, day).
			Update("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected > 0 {
			var c seqDomain.Counter
			if err := r.db.WithContext(ctx).
				Where("tenant_id = ? AND prefix = ? AND day = ?", tenantID, prefix, day).
				First(&c).Error; err != nil {
				return 0, err
			}
			return c.Value, nil
		}
		c := &seqDomain.Counter{TenantID: tenantID, Prefix: prefix, Day: day, Value: 1}
		if err := r.db.WithContext(ctx).Create(c).Error; err == nil {
			return 1, nil
		}
		// Duplicate key from a concurrent first caller: retry the update.
	}
	return 0, fmt.Errorf("sequence counter %s/%s/%s: could not increment", tenantID, prefix, day)
}
