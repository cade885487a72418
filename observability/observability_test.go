package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewStageMetrics_Noop(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	m, err := NewStageMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	m.RecordStageStart(ctx, "farm")
	m.RecordItem(ctx, "farm")
	m.RecordStageEnd(ctx, "farm", "ok", 100*time.Millisecond)
	m.RecordError(ctx, "NOT_WIRED", "worker")
}

func TestNoopStageMetrics(t *testing.T) {
	if NoopStageMetrics() == nil {
		t.Fatal("expected non-nil metrics")
	}
}

func TestStageMetrics_ManualReader(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	m, err := NewStageMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	for range 3 {
		m.RecordItem(ctx, "worker")
	}
	m.RecordItem(ctx, "farm")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	byKind := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "stage.items" {
				continue
			}
			sum, ok := md.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected data type %T", md.Data)
			}
			for _, dp := range sum.DataPoints {
				kind, _ := dp.Attributes.Value(attribute.Key(AttrStageKind))
				byKind[kind.AsString()] += dp.Value
			}
		}
	}
	if byKind["worker"] != 3 || byKind["farm"] != 1 {
		t.Errorf("unexpected item counts %v", byKind)
	}
}

func TestStartStageSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	_, span := StartStageSpan(context.Background(), "s-1", "farm", 4)
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanStageRun {
		t.Errorf("expected span %q, got %q", SpanStageRun, spans[0].Name)
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes {
		attrs[kv.Key] = kv.Value
	}
	if attrs[AttrStageID].AsString() != "s-1" {
		t.Errorf("expected stage id s-1, got %v", attrs[AttrStageID])
	}
	if attrs[AttrWorkers].AsInt64() != 4 {
		t.Errorf("expected 4 workers, got %v", attrs[AttrWorkers])
	}
}

func TestSetSpanAttributeAndError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), "test-attrs")
	SetSpanAttribute(ctx, "string-key", "value")
	SetSpanAttribute(ctx, "int-key", 42)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	// Unsupported type is ignored.
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	SetSpanError(ctx, fmt.Errorf("test error"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("expected one error event, got %d", len(spans[0].Events))
	}
}

func TestSpanHelpersNoSpan(t *testing.T) {
	ctx := context.Background()
	// Should not panic with background context.
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span error"))
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{}, "svc", "dev", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected 15s interval, got %v", cfg.Interval)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %v", cfg.SampleRate)
	}
}

func TestInitMeter(t *testing.T) {
	cfg := &MeterConfig{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       time.Hour,
	}

	mp, err := InitMeter(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitMeter failed: %v", err)
	}
	// Shutdown tries a final export against a collector that is not running.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = mp.Shutdown(ctx)
	otel.SetMeterProvider(noop.NewMeterProvider())
}

func TestInitTracerSamplingRates(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
	}{
		{"always sample", 1.0},
		{"never sample", 0.0},
		{"ratio based", 0.5},
	}

	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &TracerConfig{
				ServiceName:    "test",
				ServiceVersion: "1.0.0",
				Environment:    "test",
				Endpoint:       "localhost:4318",
				Insecure:       true,
				SampleRate:     tc.sampleRate,
			}
			tp, err := InitTracer(context.Background(), cfg)
			if err != nil {
				t.Fatalf("InitTracer failed: %v", err)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			_ = tp.Shutdown(ctx)
		})
	}
}
