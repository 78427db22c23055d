// Package middleware provides cross-cutting concerns for the graph engine:
// metrics collection and trace instrumentation that attach to a Graph via
// the ports.MetricsCollector and ports.WaveObserver interfaces without
// coupling the scheduler to a specific observability backend.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-gavel/internal/ports"
)

// PrometheusMetrics implements ports.MetricsCollector using Prometheus,
// providing real-time monitoring of graph preparation outcomes, wave
// shape, and execution latency.
type PrometheusMetrics struct {
	executeLatency   *prometheus.HistogramVec
	prepareTotal     *prometheus.CounterVec
	prepareFailures  *prometheus.CounterVec
	waveCountGauge   *prometheus.GaugeVec
	waveWidthGauge   *prometheus.GaugeVec
	genericCounter   *prometheus.CounterVec
	genericGauge     *prometheus.GaugeVec
	genericHistogram *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all its collectors in the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		executeLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graph_execute_duration_seconds",
				Help:    "Wall-clock duration of a Graph.Execute call.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		prepareTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graph_prepare_total",
				Help: "Total number of successful Graph.Prepare calls.",
			},
			[]string{},
		),
		prepareFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graph_prepare_failures_total",
				Help: "Total number of failed Graph.Prepare calls, by classified reason.",
			},
			[]string{"reason"},
		),
		waveCountGauge: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "graph_wave_count",
				Help: "Number of waves in the most recently prepared wave plan.",
			},
			[]string{},
		),
		waveWidthGauge: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "graph_wave_max_width",
				Help: "Width of the widest wave in the most recently prepared wave plan.",
			},
			[]string{},
		),
		genericCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graph_engine_operations_total",
				Help: "Catch-all counter for metrics without a dedicated collector above.",
			},
			[]string{"metric"},
		),
		genericGauge: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "graph_engine_gauge",
				Help: "Catch-all gauge for metrics without a dedicated collector above.",
			},
			[]string{"metric"},
		),
		genericHistogram: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graph_engine_histogram",
				Help:    "Catch-all histogram for metrics without a dedicated collector above.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements ports.MetricsCollector. graph_execute is routed
// to the dedicated execute-duration histogram, labeled by outcome; any
// other operation name falls through to the generic histogram.
func (pm *PrometheusMetrics) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	if operation == "graph_execute" {
		outcome := labels["outcome"]
		if outcome == "" {
			outcome = "unknown"
		}
		pm.executeLatency.WithLabelValues(outcome).Observe(duration.Seconds())
		return
	}
	pm.genericHistogram.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements ports.MetricsCollector, routing known metric
// names to their dedicated counters and everything else to a generic,
// metric-labeled counter.
func (pm *PrometheusMetrics) RecordCounter(metric string, value float64, labels map[string]string) {
	switch metric {
	case "graph_prepare_total":
		pm.prepareTotal.WithLabelValues().Add(value)
	case "graph_prepare_failures_total":
		pm.prepareFailures.WithLabelValues(labels["reason"]).Add(value)
	default:
		pm.genericCounter.WithLabelValues(metric).Add(value)
	}
}

// RecordGauge implements ports.MetricsCollector, routing known metric
// names to their dedicated gauges and everything else to a generic,
// metric-labeled gauge.
func (pm *PrometheusMetrics) RecordGauge(metric string, value float64, labels map[string]string) {
	switch metric {
	case "graph_wave_count":
		pm.waveCountGauge.WithLabelValues().Set(value)
	case "graph_wave_max_width":
		pm.waveWidthGauge.WithLabelValues().Set(value)
	default:
		pm.genericGauge.WithLabelValues(metric).Set(value)
	}
}

// RecordHistogram implements ports.MetricsCollector by recording into the
// generic, metric-labeled histogram.
func (pm *PrometheusMetrics) RecordHistogram(metric string, value float64, labels map[string]string) {
	pm.genericHistogram.WithLabelValues(metric).Observe(value)
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
