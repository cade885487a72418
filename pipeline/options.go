package pipeline

import (
	"fmt"
	"strings"

	"github.com/kbukum/skeletons/errors"
	"github.com/kbukum/skeletons/logger"
	"github.com/kbukum/skeletons/observability"
)

// ExecutionMode selects how a Pipeline activates its stages.
type ExecutionMode int

const (
	// Sequential runs and joins each stage before starting the next.
	Sequential ExecutionMode = iota
	// Concurrent starts every stage, then joins them in order.
	Concurrent
)

func (m ExecutionMode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Concurrent:
		return "concurrent"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseExecutionMode converts "sequential" or "concurrent" to a mode.
func ParseExecutionMode(s string) (ExecutionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return Sequential, nil
	case "concurrent":
		return Concurrent, nil
	default:
		return Sequential, errors.InvalidInput("mode", fmt.Sprintf("unknown execution mode %q", s))
	}
}

type options struct {
	name    string
	log     *logger.Logger
	metrics *observability.StageMetrics
	mode    ExecutionMode
}

// Option configures a Pipeline, Farm or Worker.
type Option func(*options)

// WithName sets a display name used in logs and topology dumps.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger. Stages added to a Pipeline without their own
// logger inherit the Pipeline's.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics sets the stage metrics. Stages added to a Pipeline without
// their own metrics inherit the Pipeline's.
func WithMetrics(m *observability.StageMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithExecution selects the Pipeline execution mode. It has no effect on
// workers and farms.
func WithExecution(mode ExecutionMode) Option {
	return func(o *options) { o.mode = mode }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// inherit fills unset fields from parent.
func (o *options) inherit(parent *options) {
	if o.log == nil {
		o.log = parent.log
	}
	if o.metrics == nil {
		o.metrics = parent.metrics
	}
}

func (o *options) resolveLogger() *logger.Logger {
	if o.log == nil {
		o.log = logger.Get("pipeline")
	}
	return o.log
}

func (o *options) resolveMetrics() *observability.StageMetrics {
	if o.metrics == nil {
		o.metrics = observability.NoopStageMetrics()
	}
	return o.metrics
}
