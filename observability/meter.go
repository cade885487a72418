package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/skeletons/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// StageMetrics holds the instruments recorded by pipeline stages.
type StageMetrics struct {
	items    metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
	errors   metric.Int64Counter
}

// NewStageMetrics creates stage instruments on the given meter.
func NewStageMetrics(meter metric.Meter) (*StageMetrics, error) {
	items, err := meter.Int64Counter("stage.items",
		metric.WithDescription("Items processed by stage workers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage.items counter: %w", err)
	}

	duration, err := meter.Float64Histogram("stage.duration",
		metric.WithDescription("Wall time from stage run to collect in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage.duration histogram: %w", err)
	}

	active, err := meter.Int64UpDownCounter("stage.active",
		metric.WithDescription("Number of currently running stages"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage.active gauge: %w", err)
	}

	errs, err := meter.Int64Counter("stage.errors",
		metric.WithDescription("Stage errors by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage.errors counter: %w", err)
	}

	return &StageMetrics{
		items:    items,
		duration: duration,
		active:   active,
		errors:   errs,
	}, nil
}

// NoopStageMetrics returns instruments bound to a noop meter.
func NoopStageMetrics() *StageMetrics {
	m, _ := NewStageMetrics(noop.NewMeterProvider().Meter("noop"))
	return m
}

// RecordItem counts one item processed by a stage of the given kind.
func (m *StageMetrics) RecordItem(ctx context.Context, kind string) {
	m.items.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStageKind, kind)))
}

// RecordStageStart increments the running stage count.
func (m *StageMetrics) RecordStageStart(ctx context.Context, kind string) {
	m.active.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStageKind, kind)))
}

// RecordStageEnd decrements running stages and records how long the stage ran.
func (m *StageMetrics) RecordStageEnd(ctx context.Context, kind, status string, duration time.Duration) {
	m.active.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrStageKind, kind)))
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrStageKind, kind),
		attribute.String(AttrStatus, status),
	))
}

// RecordError counts a stage error by code.
func (m *StageMetrics) RecordError(ctx context.Context, code, kind string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrErrorCode, code),
		attribute.String(AttrStageKind, kind),
	))
}
