package observability

import (
	"context"
	stderrors "errors"
	"time"
)

// Config selects whether telemetry is exported and where to.
type Config struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills unset exporter settings.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// ShutdownFunc flushes and stops the providers installed by Setup.
type ShutdownFunc func(ctx context.Context) error

// Setup installs OTLP meter and tracer providers when cfg.Enabled is set.
// When disabled it leaves the global noop providers in place and returns a
// no-op shutdown.
func Setup(ctx context.Context, cfg Config, serviceName, serviceVersion, environment string) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	cfg.ApplyDefaults()

	mp, err := InitMeter(ctx, &MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure,
		Interval:       cfg.Interval,
	})
	if err != nil {
		return nil, err
	}

	tp, err := InitTracer(ctx, &TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure,
		SampleRate:     cfg.SampleRate,
	})
	if err != nil {
		return nil, stderrors.Join(err, mp.Shutdown(ctx))
	}

	return func(ctx context.Context) error {
		return stderrors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
