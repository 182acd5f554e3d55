// Package metrics holds the Prometheus collectors of the TimeBank service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timebank"

// LedgerOperations counts ledger operations by outcome ("ok" or an error kind).
var LedgerOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "ledger_operations_total",
	Help:      "Ledger operations by operation and outcome.",
}, []string{"operation", "outcome"})

// LedgerOperationDuration observes ledger operation latency including retries.
var LedgerOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "ledger_operation_duration_seconds",
	Help:      "Ledger operation latency in seconds, including optimistic retries.",
	Buckets:   prometheus.DefBuckets,
}, []string{"operation"})

// LedgerConflicts counts commits rejected because an entity changed since it was read.
var LedgerConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "ledger_conflicts_total",
	Help:      "Optimistic concurrency conflicts by operation.",
}, []string{"operation"})

// HTTPRequests counts HTTP requests by method, route pattern and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "http_requests_total",
	Help:      "HTTP requests by method, route and status.",
}, []string{"method", "route", "status"})

// AuditViolations is the number of invariant violations found by the last audit.
var AuditViolations = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "audit_violations",
	Help:      "Invariant violations found by the most recent audit.",
})
