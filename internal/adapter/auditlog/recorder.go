package auditlog

import (
	"context"
	"time"

	"retail-backoffice/internal/domain/audit"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ZapRecorder emits audit events as structured log lines. Recording is
// fire-and-forget; nothing here can fail a business operation.
type ZapRecorder struct{ log *zap.Logger }

func NewZapRecorder(log *zap.Logger) *ZapRecorder { return &ZapRecorder{log: log} }

func (r *ZapRecorder) Record(_ context.Context, ev audit.Event) {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	r.log.Info("audit",
		zap.String("event_id", ev.EventID),
		zap.String("tenant_id", ev.TenantID),
		zap.String("user_id", ev.UserID),
		zap.String("action", ev.Action),
		zap.String("object_table", ev.ObjectTable),
		zap.String("object_id", ev.ObjectID),
		zap.Any("data", ev.Data),
		zap.Time("occurred_at", ev.OccurredAt),
	)
}
