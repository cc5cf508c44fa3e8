package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Catalog and session Prometheus metrics.
var (
	CatalogRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artcollector",
			Name:      "catalog_requests_total",
			Help:      "Total number of catalog API requests",
		},
		[]string{"endpoint", "status"},
	)

	CatalogRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "artcollector",
			Name:      "catalog_request_duration_seconds",
			Help:      "Catalog API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	CatalogErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artcollector",
			Name:      "catalog_errors_total",
			Help:      "Total catalog API errors",
		},
		[]string{"endpoint", "error_type"},
	)

	OptionCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artcollector",
			Name:      "option_cache_total",
			Help:      "Option list cache hits and misses",
		},
		[]string{"kind", "result"}, // "hit" / "miss"
	)

	WorkflowTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artcollector",
			Name:      "workflow_total",
			Help:      "Query workflow invocations by trigger and outcome",
		},
		[]string{"trigger", "outcome"}, // outcome: "published" / "failed" / "stale"
	)

	QuotaUsed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "artcollector",
			Name:      "catalog_quota_used",
			Help:      "Catalog requests counted against today's quota",
		},
	)
)

var registerOnce sync.Once

// RegisterCatalogMetrics registers catalog, cache and workflow metrics. Safe to call more than once.
func RegisterCatalogMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(CatalogRequestsTotal)
		prometheus.MustRegister(CatalogRequestDuration)
		prometheus.MustRegister(CatalogErrorsTotal)
		prometheus.MustRegister(OptionCacheTotal)
		prometheus.MustRegister(WorkflowTotal)
		prometheus.MustRegister(QuotaUsed)
	})
}
