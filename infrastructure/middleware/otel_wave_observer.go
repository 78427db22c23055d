package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-gavel/internal/ports"
)

var _ ports.WaveObserver = (*OTelWaveObserver)(nil)

// OTelWaveObserver implements ports.WaveObserver using OpenTelemetry
// tracing: one span covering the whole Execute call, with a child span per
// wave recording its width and outcome.
type OTelWaveObserver struct {
	metrics ports.MetricsCollector
	name    string

	executeSpan trace.Span
	waveSpan    trace.Span
}

// NewOTelWaveObserver creates a new OpenTelemetry wave observer. name
// identifies the graph instance in span and metric labels.
func NewOTelWaveObserver(metrics ports.MetricsCollector, name string) *OTelWaveObserver {
	return &OTelWaveObserver{metrics: metrics, name: name}
}

// PreExecute implements ports.WaveObserver, opening the top-level span for
// the whole Execute call.
func (o *OTelWaveObserver) PreExecute(ctx context.Context, waveCount int) {
	tracer := otel.Tracer("graph-engine")
	_, span := tracer.Start(ctx, "Graph.Execute")
	span.SetAttributes(
		attribute.String("graph.name", o.name),
		attribute.Int("graph.wave_count", waveCount),
	)
	o.executeSpan = span
}

// PreWave implements ports.WaveObserver, opening a child span for the wave
// about to run.
func (o *OTelWaveObserver) PreWave(ctx context.Context, waveIndex, waveWidth int) {
	tracer := otel.Tracer("graph-engine")
	parent := ctx
	if o.executeSpan != nil {
		parent = trace.ContextWithSpan(ctx, o.executeSpan)
	}
	_, span := tracer.Start(parent, "Graph.wave")
	span.SetAttributes(
		attribute.String("graph.name", o.name),
		attribute.Int("wave.index", waveIndex),
		attribute.Int("wave.width", waveWidth),
	)
	o.waveSpan = span
}

// PostWave implements ports.WaveObserver, closing the wave's span and
// recording its latency.
func (o *OTelWaveObserver) PostWave(ctx context.Context, waveIndex int, elapsed time.Duration, err error) {
	if o.waveSpan == nil {
		return
	}
	defer o.waveSpan.End()

	if err != nil {
		o.waveSpan.SetStatus(codes.Error, err.Error())
	} else {
		o.waveSpan.SetStatus(codes.Ok, "")
	}

	if o.metrics != nil {
		labels := map[string]string{"graph": o.name}
		o.metrics.RecordLatency("graph_wave", elapsed, labels)
	}
}

// PostExecute implements ports.WaveObserver, closing the top-level span and
// recording the overall execute latency, labeled by outcome.
func (o *OTelWaveObserver) PostExecute(ctx context.Context, elapsed time.Duration, err error) {
	if o.executeSpan == nil {
		return
	}
	defer o.executeSpan.End()

	outcome := "ok"
	if err != nil {
		outcome = "error"
		o.executeSpan.SetStatus(codes.Error, err.Error())
	} else {
		o.executeSpan.SetStatus(codes.Ok, "")
	}

	if o.metrics != nil {
		o.metrics.RecordLatency("graph_execute", elapsed, map[string]string{"outcome": outcome})
	}
}
