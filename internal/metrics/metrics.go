// Package metrics exposes Prometheus instrumentation for store operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planwise_store_operations_total",
		Help: "Record store operations by name and outcome.",
	}, []string{"operation", "status"})

	storeOpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planwise_store_operation_seconds",
		Help:    "Record store operation latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	snapshotSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planwise_projects_loaded",
		Help: "Number of projects in the in-memory snapshot.",
	})
)

// ObserveStore records one store operation.
func ObserveStore(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	storeOps.WithLabelValues(operation, status).Inc()
	storeOpDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// SetSnapshotSize publishes the current snapshot size.
func SetSnapshotSize(n int) {
	snapshotSize.Set(float64(n))
}
