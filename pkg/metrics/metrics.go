package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backoffice_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Transfer lifecycle metrics
	TransferTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_transfer_transitions_total",
			Help: "Total number of transfer state transitions",
		},
		[]string{"transition", "outcome"},
	)

	// Bulk transfer metrics
	BulkFanoutChildren = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_bulk_fanout_children_total",
			Help: "Total number of child transfers created by bulk approval fan-out",
		},
	)

	// Approval workflow metrics
	ApprovalDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_approval_decisions_total",
			Help: "Total number of approval decisions recorded",
		},
		[]string{"decision"},
	)
	ApprovalRequestsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_approval_requests_expired_total",
			Help: "Total number of approval requests resolved by the expiry sweep",
		},
	)

	// Inventory ledger metrics
	LedgerConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_ledger_conflicts_total",
			Help: "Total number of ledger operations rejected for insufficient stock",
		},
		[]string{"operation"},
	)
)

// RecordTransition increments the transfer transition counter.
func RecordTransition(transition string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	TransferTransitionsTotal.WithLabelValues(transition, outcome).Inc()
}

// RecordDecision increments the approval decision counter.
func RecordDecision(decision string) {
	ApprovalDecisionsTotal.WithLabelValues(decision).Inc()
}
