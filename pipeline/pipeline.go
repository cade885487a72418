package pipeline

import (
	"context"
	stderrors "errors"
	"iter"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/skeletons/channel"
	"github.com/kbukum/skeletons/errors"
	"github.com/kbukum/skeletons/logger"
	"github.com/kbukum/skeletons/observability"
)

// Pipeline is an ordered composition of stages, wired end to end.
// Its input is the first stage's input and its output the last stage's
// output. It owns every channel it creates and every stage added to it.
type Pipeline[T any] struct {
	stageBase[T]
	stages   []Stage[T]
	channels []*Queue[T]
	opts     options

	// absorbed is set once this pipeline has been flattened into another.
	absorbed  bool
	destroyed bool
}

// New creates an empty Pipeline.
func New[T any](opts ...Option) *Pipeline[T] {
	o := newOptions(opts)
	o.resolveLogger()
	o.resolveMetrics()
	return &Pipeline[T]{
		stageBase: newStageBase[T](KindPipeline, o.name),
		opts:      o,
	}
}

// Mode returns the configured execution mode.
func (p *Pipeline[T]) Mode() ExecutionMode { return p.opts.mode }

// Len returns the number of stages.
func (p *Pipeline[T]) Len() int { return len(p.stages) }

// Stages returns the stages in order.
func (p *Pipeline[T]) Stages() []Stage[T] {
	return slices.Clone(p.stages)
}

// Leaves yields the workers and farms of the pipeline in order, descending
// into nested pipelines.
func (p *Pipeline[T]) Leaves() iter.Seq[Stage[T]] {
	return func(yield func(Stage[T]) bool) {
		for _, st := range p.stages {
			if sub, ok := st.(*Pipeline[T]); ok {
				for leaf := range sub.Leaves() {
					if !yield(leaf) {
						return
					}
				}
				continue
			}
			if !yield(st) {
				return
			}
		}
	}
}

// AddStage appends a stage. A *Pipeline is flattened: each of its leaf
// stages is appended in order and the nested pipeline is left empty.
// A *Farm gets its workers wired to the farm's channels.
func (p *Pipeline[T]) AddStage(stage Stage[T]) error {
	if p.kind != KindPipeline {
		return errors.UnknownStage(p.kind.String())
	}
	if p.destroyed || p.absorbed {
		return errors.AlreadyWired(p.id)
	}
	if stage == nil {
		return errors.UnknownStage("nil")
	}

	switch s := stage.(type) {
	case *Pipeline[T]:
		if s == p {
			return errors.InvalidInput("stage", "a pipeline cannot be added to itself")
		}
		if s.absorbed || s.destroyed || s.attached {
			return errors.AlreadyWired(s.id)
		}
		if s.kind != KindPipeline {
			return errors.UnknownStage(s.kind.String())
		}
		for _, ch := range s.channels {
			if ch.Len() > 0 {
				return errors.InvalidInput("stage", "pipeline holds buffered items and cannot be flattened")
			}
		}
		leaves := slices.Collect(s.Leaves())
		p.channels = append(p.channels, s.channels...)
		s.stages, s.channels = nil, nil
		s.input, s.output = nil, nil
		s.absorbed = true
		for _, leaf := range leaves {
			leaf.base().attached = false
			p.attach(leaf)
		}
		return nil
	case *Worker[T]:
		if s.kind != KindWorker {
			return errors.UnknownStage(s.kind.String())
		}
		if s.attached || s.farm != nil {
			return errors.AlreadyWired(s.id)
		}
		p.attach(s)
		return nil
	case *Farm[T]:
		if s.kind != KindFarm {
			return errors.UnknownStage(s.kind.String())
		}
		if s.attached {
			return errors.AlreadyWired(s.id)
		}
		p.attach(s)
		return nil
	default:
		return errors.UnknownStage(stage.Kind().String())
	}
}

// attach wires a worker or farm after the current last stage.
func (p *Pipeline[T]) attach(stage Stage[T]) {
	b := stage.base()
	if len(p.stages) > 0 {
		b.input = p.output
	} else {
		b.input = p.newChannel()
		p.input = b.input
	}
	b.output = p.newChannel()
	p.output = b.output
	b.attached = true
	p.stages = append(p.stages, stage)

	workers := 1
	switch s := stage.(type) {
	case *Worker[T]:
		s.opts.inherit(&p.opts)
	case *Farm[T]:
		s.opts.inherit(&p.opts)
		s.setWorkers()
		workers = s.Size()
	}

	p.opts.log.Debug("stage added", logger.Fields(
		logger.FieldPipeline, p.name,
		logger.FieldStage, b.name,
		logger.FieldKind, b.kind.String(),
		logger.FieldWorkers, workers,
	))
}

func (p *Pipeline[T]) newChannel() *Queue[T] {
	ch := channel.New[Item[T]]()
	p.channels = append(p.channels, ch)
	return ch
}

// Put enqueues items in order on the pipeline input, followed by one EOS.
func (p *Pipeline[T]) Put(items []T) error {
	if len(p.stages) == 0 {
		return errors.EmptyPipeline("put")
	}
	for _, v := range items {
		p.input.Put(NewItem(v))
	}
	p.input.Put(EOS[T]())
	return nil
}

// Run activates every stage and blocks until all of them have drained
// their input through EOS.
func (p *Pipeline[T]) Run(ctx context.Context) error {
	if p.kind != KindPipeline {
		return errors.UnknownStage(p.kind.String())
	}
	if len(p.stages) == 0 {
		return errors.EmptyPipeline("run")
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanPipelineRun, trace.WithAttributes(
		attribute.String(observability.AttrStageID, p.id),
		attribute.Int(observability.AttrStages, len(p.stages)),
		attribute.String(observability.AttrMode, p.opts.mode.String()),
	))
	defer span.End()

	start := time.Now()
	var err error
	switch p.opts.mode {
	case Concurrent:
		err = p.runConcurrent(ctx)
	default:
		err = p.runSequential(ctx)
	}
	if err != nil {
		observability.SetSpanError(ctx, err)
		p.opts.log.Error("pipeline run failed", logger.ErrorFields("run", err))
		return err
	}

	p.opts.log.Debug("pipeline run complete",
		logger.DurationFields("run", time.Since(start)),
		logger.Fields(logger.FieldPipeline, p.name, logger.FieldMode, p.opts.mode.String()),
	)
	return nil
}

func (p *Pipeline[T]) runSequential(ctx context.Context) error {
	for _, st := range p.stages {
		collect, err := p.startStage(ctx, st)
		if err != nil {
			return err
		}
		collect()
	}
	return nil
}

func (p *Pipeline[T]) runConcurrent(ctx context.Context) error {
	collectors := make([]func(), 0, len(p.stages))
	var startErr error
	for _, st := range p.stages {
		collect, err := p.startStage(ctx, st)
		if err != nil {
			startErr = err
			break
		}
		collectors = append(collectors, collect)
	}
	for _, collect := range collectors {
		collect()
	}
	return startErr
}

// startStage dispatches on the stage variant, starts it, and returns the
// function that joins it.
func (p *Pipeline[T]) startStage(ctx context.Context, st Stage[T]) (func(), error) {
	var (
		run     func(context.Context) error
		join    func()
		workers = 1
	)
	switch s := st.(type) {
	case *Worker[T]:
		run, join = s.Run, s.Collect
	case *Farm[T]:
		run, join = s.Run, s.Collect
		workers = s.Size()
	case *Pipeline[T]:
		// Flattening keeps nested pipelines out of p.stages.
		if err := s.Run(ctx); err != nil {
			return nil, err
		}
		return func() {}, nil
	default:
		return nil, errors.UnknownStage(st.Kind().String())
	}

	b := st.base()
	kind := b.kind.String()
	metrics := p.opts.metrics
	stageCtx, span := observability.StartStageSpan(ctx, b.id, kind, workers)

	if err := run(stageCtx); err != nil {
		observability.SetSpanError(stageCtx, err)
		span.End()
		if appErr, ok := errors.AsAppError(err); ok {
			metrics.RecordError(ctx, string(appErr.Code), kind)
		}
		return nil, err
	}

	metrics.RecordStageStart(ctx, kind)
	start := time.Now()
	p.opts.log.Debug("stage started", logger.Fields(
		logger.FieldStage, b.name,
		logger.FieldKind, kind,
		logger.FieldWorkers, workers,
	))

	return func() {
		join()
		d := time.Since(start)
		metrics.RecordStageEnd(ctx, kind, "ok", d)
		span.End()
		p.opts.log.Debug("stage collected",
			logger.DurationFields("collect", d),
			logger.Fields(logger.FieldStage, b.name),
		)
	}, nil
}

// GetOutput drains the values currently buffered on the final output
// channel, stopping at and consuming EOS. It never blocks.
func (p *Pipeline[T]) GetOutput() []T {
	if p.output == nil {
		return nil
	}
	var out []T
	for {
		it, ok := p.output.TryGet()
		if !ok || it.IsEOS() {
			return out
		}
		out = append(out, it.Value())
	}
}

// Destroy joins and releases every stage, then destroys every channel the
// pipeline created, each exactly once. Calling Destroy again is a no-op.
func (p *Pipeline[T]) Destroy() error {
	if p.destroyed || p.absorbed {
		return nil
	}
	p.destroyed = true

	var errs []error
	for _, st := range p.stages {
		switch s := st.(type) {
		case *Worker[T]:
			s.Destroy()
		case *Farm[T]:
			s.Destroy()
		case *Pipeline[T]:
			errs = append(errs, s.Destroy())
		default:
			errs = append(errs, errors.UnknownStage(st.Kind().String()))
		}
	}
	for _, ch := range p.channels {
		errs = append(errs, ch.Destroy())
	}

	p.opts.log.Debug("pipeline destroyed", logger.Fields(
		logger.FieldPipeline, p.name,
		"channels", len(p.channels),
	))

	p.stages, p.channels = nil, nil
	p.input, p.output = nil, nil
	return stderrors.Join(errs...)
}
