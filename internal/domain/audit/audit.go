package audit

import (
	"context"
	"time"
)

// Event is one audit trail entry emitted by the core on a state change.
type Event struct {
	EventID     string
	TenantID    string
	UserID      string
	Action      string
	ObjectTable string
	ObjectID    string
	Data        map[string]any
	OccurredAt  time.Time
}

// Recorder receives audit events. The core treats recording as fire-and-forget:
// a failed Record is logged by the implementation, never propagated.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}
