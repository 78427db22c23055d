package ports

import (
	"context"
	"time"
)

// WaveObserver provides observability hooks for graph execution without
// coupling the scheduler to a specific tracing or metrics backend.
// Implementations can add OpenTelemetry spans, Prometheus metrics, or
// logging; a nil WaveObserver is valid and disables observation entirely.
type WaveObserver interface {
	// PreExecute is called once, before the first wave of an Execute call.
	PreExecute(ctx context.Context, waveCount int)

	// PreWave is called before a wave's vertices are dispatched.
	PreWave(ctx context.Context, waveIndex, waveWidth int)

	// PostWave is called after a wave's results have been published to the
	// result store, with the wave's wall-clock duration and any error that
	// aborted execution.
	PostWave(ctx context.Context, waveIndex int, elapsed time.Duration, err error)

	// PostExecute is called once, after the final wave completes or
	// execution aborts, with the total elapsed duration and any error.
	PostExecute(ctx context.Context, elapsed time.Duration, err error)
}

// MetricsCollector defines the interface for collecting operational
// metrics about graph preparation and execution. Implementations should
// integrate with observability platforms like Prometheus.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
