package approval

import (
	"context"
	"time"
)

type RuleRepository interface {
	Create(ctx context.Context, r *Rule) error
	Save(ctx context.Context, r *Rule) error
	GetByRuleID(ctx context.Context, tenantID, ruleID string) (*Rule, error)
	// ListActive returns active rules for the object type ordered by most
	// recently updated first; the first entry wins when several match.
	ListActive(ctx context.Context, tenantID string, objectType ObjectType) ([]Rule, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Rule, error)
}

type RequestRepository interface {
	Create(ctx context.Context, r *Request) error
	Save(ctx context.Context, r *Request) error
	GetByRequestID(ctx context.Context, tenantID, requestID string) (*Request, error)
	// GetByRequestIDForUpdate locks the row for the surrounding transaction so
	// a concurrent decide or expiry sweep cannot resolve the same request twice.
	GetByRequestIDForUpdate(ctx context.Context, tenantID, requestID string) (*Request, error)
	// GetByObject returns the newest request opened for the given object.
	GetByObject(ctx context.Context, tenantID string, objectType ObjectType, objectID string) (*Request, error)
	ListPending(ctx context.Context, tenantID string) ([]Request, error)
	// ExpireDue flips every pending request past its expiry to expired in a
	// single status-guarded update and reports how many rows changed.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}
