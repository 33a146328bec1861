// Package metrics defines and registers the custom Prometheus metrics of the
// employee API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_api"

// ── Employee metrics ──────────────────────────────────────────────────────────

// EmployeeOperationsTotal counts employee endpoint calls.
// Labels:
//   - operation: "list", "get", "create", "update", "delete", "inactive",
//     "by_department", "by_salary", "by_name"
//   - outcome: "ok", "not_found", "invalid", "error"
var EmployeeOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employee_operations_total",
		Help:      "Total number of employee operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration, login and logout attempts.
// Labels:
//   - action: "register", "login", "logout"
//   - outcome: "ok", "conflict", "invalid", "unauthorized", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication actions, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events by result: "persisted", "failed", "dropped".
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events, labelled by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
