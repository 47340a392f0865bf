package sequence

import (
	"context"
	"time"
)

// Counter is one per-(tenant, prefix, day) row whose value is incremented
// under a row lock, so concurrent callers can never mint the same number.
type Counter struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	TenantID  string    `gorm:"size:32;not null;uniqueIndex:ux_sequence_counters_key,priority:1"`
	Prefix    string    `gorm:"size:16;not null;uniqueIndex:ux_sequence_counters_key,priority:2"`
	Day       string    `gorm:"size:8;not null;uniqueIndex:ux_sequence_counters_key,priority:3"`
	Value     int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Counter) TableName() string { return "sequence_counters" }

type Repository interface {
	// Increment returns the next counter value for (tenant, prefix, day),
	// creating the row on first use. Must run inside the caller's transaction
	// with the counter row locked.
	Increment(ctx context.Context, tenantID, prefix, day string) (int64, error)
}
