package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogSyncMetrics records processor reconciliation outcomes.
type CatalogSyncMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	skipped  *prometheus.CounterVec
}

// NewCatalogSyncMetrics registers the catalog sync metrics on the provided
// registerer. A nil registerer yields a no-op recorder for tests.
func NewCatalogSyncMetrics(reg prometheus.Registerer) *CatalogSyncMetrics {
	if reg == nil {
		return &CatalogSyncMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_sync_duration_seconds",
		Help:    "Duration of catalog sync runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"direction"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_sync_success",
		Help: "Successful catalog sync runs.",
	}, []string{"direction"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_sync_failure",
		Help: "Failed catalog sync runs.",
	}, []string{"direction"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_sync_skipped",
		Help: "Catalog sync runs skipped before reaching the processor.",
	}, []string{"reason"})
	reg.MustRegister(duration, success, failure, skipped)
	return &CatalogSyncMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		skipped:  skipped,
	}
}

// ObserveDuration records the duration of a sync run in the given
// direction ("push" or "pull").
func (c *CatalogSyncMetrics) ObserveDuration(direction string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(direction)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the given direction.
func (c *CatalogSyncMetrics) IncSuccess(direction string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(direction)).Inc()
}

// IncFailure increments the failure counter for the given direction.
func (c *CatalogSyncMetrics) IncFailure(direction string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(direction)).Inc()
}

// IncSkipped increments the skip counter for the given reason.
func (c *CatalogSyncMetrics) IncSkipped(reason string) {
	if c == nil || c.skipped == nil {
		return
	}
	c.skipped.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
