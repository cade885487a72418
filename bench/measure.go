package bench

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kbukum/skeletons/errors"
	"github.com/kbukum/skeletons/logger"
	"github.com/kbukum/skeletons/observability"
	"github.com/kbukum/skeletons/pipeline"
)

// Timing is one timed pass through a pipeline.
type Timing struct {
	Round   int           `json:"round"`
	Batch   int           `json:"batch"`
	Elapsed time.Duration `json:"elapsed"`
}

// Throughput returns items per second for the pass.
func (t Timing) Throughput() float64 {
	if t.Elapsed <= 0 {
		return 0
	}
	return float64(t.Batch) / t.Elapsed.Seconds()
}

// Result collects the timings of one benchmark.
type Result struct {
	Name    string   `json:"name"`
	Mode    string   `json:"mode"`
	Workers int      `json:"workers"`
	Stages  int      `json:"stages"`
	FibN    int      `json:"fib_n"`
	Timings []Timing `json:"timings"`
}

// Total returns the summed elapsed time of every round.
func (r *Result) Total() time.Duration {
	var d time.Duration
	for _, t := range r.Timings {
		d += t.Elapsed
	}
	return d
}

// Items returns the number of items processed across every round.
func (r *Result) Items() int {
	n := 0
	for _, t := range r.Timings {
		n += t.Batch
	}
	return n
}

// Options configures a benchmark run.
type Options struct {
	// Workers is the size of every farm.
	Workers int
	// FibN is the Fibonacci index each task computes.
	FibN int
	// Rounds is the number of doubling batches for MeasureFarm.
	Rounds int
	// Items is the batch size for MeasurePipeline.
	Items int
	// Stages is the number of stages for MeasurePipeline.
	Stages int
	Mode   pipeline.ExecutionMode

	Logger  *logger.Logger
	Metrics *observability.StageMetrics
}

func (o Options) log() *logger.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logger.Get("bench")
}

func (o Options) pipelineOptions(name string) []pipeline.Option {
	opts := []pipeline.Option{pipeline.WithName(name), pipeline.WithExecution(o.Mode)}
	if o.Logger != nil {
		opts = append(opts, pipeline.WithLogger(o.Logger))
	}
	if o.Metrics != nil {
		opts = append(opts, pipeline.WithMetrics(o.Metrics))
	}
	return opts
}

// Measure runs p once and returns the wall time of the run.
func Measure[T any](ctx context.Context, p *pipeline.Pipeline[T]) (time.Duration, error) {
	start := time.Now()
	if err := p.Run(ctx); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// MeasureFarm times a single farm of opts.Workers over opts.Rounds batches.
// The first batch holds one task and each following batch doubles.
func MeasureFarm(ctx context.Context, opts Options) (*Result, error) {
	if opts.Rounds < 1 {
		return nil, errors.InvalidInput("rounds", "at least one round is required")
	}
	farm, err := pipeline.NewFarm(opts.Workers, Compute, pipeline.WithName("fib"))
	if err != nil {
		return nil, err
	}
	p := pipeline.New[Task](opts.pipelineOptions("farm-bench")...)
	defer p.Destroy()
	if err := p.AddStage(farm); err != nil {
		return nil, err
	}

	res := &Result{
		Name:    "farm",
		Mode:    opts.Mode.String(),
		Workers: opts.Workers,
		Stages:  1,
		FibN:    opts.FibN,
	}
	size, next := 1, 0
	for round := range opts.Rounds {
		timing, err := runBatch(ctx, opts.log(), p, round, NewBatch(next, size, opts.FibN), 1)
		if err != nil {
			return res, err
		}
		res.Timings = append(res.Timings, timing)
		next += size
		size *= 2
	}
	return res, nil
}

// MeasurePipeline times one pass of opts.Items tasks through opts.Stages
// stages alternating worker and farm: Worker, Farm(N), Worker, ...
func MeasurePipeline(ctx context.Context, opts Options) (*Result, error) {
	p, err := BuildPipeline(opts)
	if err != nil {
		return nil, err
	}
	defer p.Destroy()

	res := &Result{
		Name:    "pipeline",
		Mode:    opts.Mode.String(),
		Workers: opts.Workers,
		Stages:  opts.Stages,
		FibN:    opts.FibN,
	}
	timing, err := runBatch(ctx, opts.log(), p, 0, NewBatch(0, opts.Items, opts.FibN), opts.Stages)
	if err != nil {
		return res, err
	}
	res.Timings = append(res.Timings, timing)
	return res, nil
}

// BuildPipeline assembles the stage chain used by MeasurePipeline without
// running it.
func BuildPipeline(opts Options) (*pipeline.Pipeline[Task], error) {
	if opts.Stages < 1 {
		return nil, errors.InvalidInput("stages", "at least one stage is required")
	}
	p := pipeline.New[Task](opts.pipelineOptions("pipeline-bench")...)
	for i := range opts.Stages {
		var (
			st  pipeline.Stage[Task]
			err error
		)
		name := fmt.Sprintf("stage-%d", i)
		if i%2 == 0 {
			st = pipeline.NewWorker(Compute, pipeline.WithName(name))
		} else {
			st, err = pipeline.NewFarm(opts.Workers, Compute, pipeline.WithName(name))
		}
		if err == nil {
			err = p.AddStage(st)
		}
		if err != nil {
			return nil, stderrors.Join(err, p.Destroy())
		}
	}
	return p, nil
}

// runBatch pushes one batch through p, times the run and checks that every
// task came out having passed every stage.
func runBatch(ctx context.Context, log *logger.Logger, p *pipeline.Pipeline[Task], round int, batch []Task, hops int) (Timing, error) {
	if err := ctx.Err(); err != nil {
		return Timing{}, err
	}
	if err := p.Put(batch); err != nil {
		return Timing{}, err
	}
	elapsed, err := Measure(ctx, p)
	if err != nil {
		return Timing{}, err
	}
	if err := verify(batch, p.GetOutput(), hops); err != nil {
		return Timing{}, err
	}

	log.Debug("batch complete",
		logger.DurationFields("run", elapsed),
		logger.Fields("round", round, logger.FieldItems, len(batch)),
	)
	return Timing{Round: round, Batch: len(batch), Elapsed: elapsed}, nil
}

func verify(in, out []Task, hops int) error {
	if len(out) != len(in) {
		return errors.Internal(fmt.Errorf("expected %d results, got %d", len(in), len(out)))
	}
	seen := make(map[int]bool, len(out))
	for _, t := range out {
		if seen[t.ID] {
			return errors.Internal(fmt.Errorf("task %d duplicated", t.ID))
		}
		if t.Hops != hops {
			return errors.Internal(fmt.Errorf("task %d passed %d of %d stages", t.ID, t.Hops, hops))
		}
		seen[t.ID] = true
	}
	for _, t := range in {
		if !seen[t.ID] {
			return errors.Internal(fmt.Errorf("task %d lost", t.ID))
		}
	}
	return nil
}
