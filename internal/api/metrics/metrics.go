// Package metrics defines and registers all custom Prometheus metrics for the
// XP tracker API. It is the single source of truth for metric names, labels,
// and help strings. HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "xp_tracker"

// ── Storage metrics ───────────────────────────────────────────────────────────

// StorageOperationsTotal counts repository calls.
// Labels:
//   - entity: "xps", "categories" or "users"
//   - backend: "local" or "document"
//   - operation: repository method, e.g. "get_all", "update", "find_by_query"
//   - result: "ok", "not_found", "conflict", "unavailable" or "error"
var StorageOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_operations_total",
		Help:      "Total number of repository operations, by entity, backend, operation and result.",
	},
	[]string{"entity", "backend", "operation", "result"},
)

// StorageOperationDuration measures repository call latency.
var StorageOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "storage_operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"entity", "backend", "operation"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// XPCreatedTotal counts newly logged XP entries.
var XPCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "xp_created_total",
		Help:      "Total number of XP entries created.",
	},
)

// XPListResultSize tracks how many entries a filtered listing returns.
var XPListResultSize = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "xp_list_result_size",
		Help:      "Number of XP entries returned by a filtered listing.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	},
)

// CategoriesSeededTotal counts default categories written by seeding.
var CategoriesSeededTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "categories_seeded_total",
		Help:      "Total number of default categories inserted by seeding.",
	},
)

// UsersCreatedTotal counts sign-ups.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)
