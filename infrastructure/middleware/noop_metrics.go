package middleware

import (
	"time"

	"github.com/spac3man-G/vendoreval/internal/ports"
)

// NoopMetrics discards every observation. It lets callers wire an explicit
// collector in environments where Prometheus is unavailable.
type NoopMetrics struct{}

// NewNoopMetrics creates a collector that records nothing.
func NewNoopMetrics() *NoopMetrics { return &NoopMetrics{} }

// RecordLatency discards the observation.
func (*NoopMetrics) RecordLatency(string, time.Duration, map[string]string) {}

// RecordCounter discards the observation.
func (*NoopMetrics) RecordCounter(string, float64, map[string]string) {}

// RecordGauge discards the observation.
func (*NoopMetrics) RecordGauge(string, float64, map[string]string) {}

// RecordHistogram discards the observation.
func (*NoopMetrics) RecordHistogram(string, float64, map[string]string) {}

// Compile-time verification that NoopMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*NoopMetrics)(nil)
