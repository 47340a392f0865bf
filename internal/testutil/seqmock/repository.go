package seqmock

import (
	"context"
	"sync"

	"retail-backoffice/internal/domain/sequence"
)

var _ sequence.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies sequence.Repository. With no
// IncrementFn set it behaves like an in-memory counter, which is what most
// tests want.
type Repo struct {
	IncrementFn func(ctx context.Context, tenantID, prefix, day string) (int64, error)

	mu     sync.Mutex
	counts map[string]int64
}

func (m *Repo) Increment(ctx context.Context, tenantID, prefix, day string) (int64, error) {
	if m.IncrementFn != nil {
		return m.IncrementFn(ctx, tenantID, prefix, day)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	k := tenantID + "/" + prefix + "/" + day
	m.counts[k]++
	return m.counts[k], nil
}
