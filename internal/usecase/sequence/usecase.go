package sequence

import (
	"context"
	"fmt"
	"time"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/domain/sequence"
)

// Generator mints human-readable numbers like TRF-20250901-153045-0007. The
// per-(tenant, prefix, day) counter row is incremented under a row lock, so
// concurrency never produces duplicates; there is no probe-and-retry loop.
type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator { return &Generator{now: func() time.Time { return time.Now().UTC() }} }

// Next returns the next number for the tenant and prefix. It must be called
// inside the transaction that persists the numbered record, so a rollback
// discards the counter increment along with everything else.
func (g *Generator) Next(ctx context.Context, repo sequence.Repository, tenantID, prefix string) (string, error) {
	if tenantID == "" || prefix == "" {
		return "", apperr.Validation("tenant id and prefix are required")
	}
	now := g.now()
	day := now.Format("20060102")
	n, err := repo.Increment(ctx, tenantID, prefix, day)
	if err != nil {
		return "", apperr.System(err)
	}
	return fmt.Sprintf("%s-%s-%s-%04d", prefix, day, now.Format("150405"), n), nil
}
