// Package middleware provides cross-cutting concerns for the scoring engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/spac3man-G/vendoreval/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks submission and rejection volumes, consensus
// workflow transitions, aggregation latency, and result completeness.
type PrometheusMetrics struct {
	scoresSubmitted   *prometheus.CounterVec
	rejections        *prometheus.CounterVec
	consensusActivity *prometheus.CounterVec
	rankingsComputed  *prometheus.CounterVec
	operationLatency  *prometheus.HistogramVec
	completeness      *prometheus.HistogramVec
	systemGauges      *prometheus.GaugeVec
	fallbackCounter   *prometheus.CounterVec
}

// NewPrometheusMetrics creates a collector registered in the default
// Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWith(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsWith creates a collector registered in the given
// registerer. Tests pass a fresh registry to avoid duplicate-registration
// panics across cases.
func NewPrometheusMetricsWith(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		scoresSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendoreval_scores_submitted_total",
				Help: "Total score entries accepted into the ledger.",
			},
			[]string{"evaluation_id", "method"},
		),
		rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendoreval_rejections_total",
				Help: "Total rejected operations by reason.",
			},
			[]string{"operation", "reason"},
		),
		consensusActivity: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendoreval_consensus_transitions_total",
				Help: "Consensus workflow transitions by type.",
			},
			[]string{"transition"},
		),
		rankingsComputed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendoreval_rankings_computed_total",
				Help: "Total full-ranking computations.",
			},
			[]string{"evaluation_id", "method"},
		),
		operationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vendoreval_operation_duration_seconds",
				Help:    "Latency of engine operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		completeness: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vendoreval_aggregation_completeness",
				Help:    "Completeness ratio of aggregated results.",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
			[]string{"evaluation_id"},
		),
		systemGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vendoreval_system_state",
				Help: "Current engine state values.",
			},
			[]string{"metric"},
		),
		fallbackCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendoreval_operations_total",
				Help: "Total engine operations not covered by a dedicated metric.",
			},
			[]string{"operation"},
		),
	}
}

// RecordLatency records an operation's duration.
func (pm *PrometheusMetrics) RecordLatency(operation string, duration time.Duration, _ map[string]string) {
	pm.operationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter routes a counter increment to the matching metric family.
func (pm *PrometheusMetrics) RecordCounter(metric string, value float64, labels map[string]string) {
	switch metric {
	case "scores_submitted_total":
		pm.scoresSubmitted.WithLabelValues(labels["evaluation_id"], labels["method"]).Add(value)
	case "rejections_total":
		pm.rejections.WithLabelValues(labels["operation"], labels["reason"]).Add(value)
	case "consensus_transitions_total":
		pm.consensusActivity.WithLabelValues(labels["transition"]).Add(value)
	case "rankings_computed_total":
		pm.rankingsComputed.WithLabelValues(labels["evaluation_id"], labels["method"]).Add(value)
	default:
		pm.fallbackCounter.WithLabelValues(metric).Add(value)
	}
}

// RecordGauge sets a named state gauge.
func (pm *PrometheusMetrics) RecordGauge(metric string, value float64, _ map[string]string) {
	pm.systemGauges.WithLabelValues(metric).Set(value)
}

// RecordHistogram routes a sampled value to the matching histogram.
func (pm *PrometheusMetrics) RecordHistogram(metric string, value float64, labels map[string]string) {
	switch metric {
	case "aggregation_completeness":
		pm.completeness.WithLabelValues(labels["evaluation_id"]).Observe(value)
	default:
		pm.operationLatency.WithLabelValues(metric).Observe(value)
	}
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
