package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/skeletons/errors"
	"github.com/kbukum/skeletons/logger"
)

// Farm runs N identical workers over one shared input channel and one
// shared output channel.
//
// EOS handling: a worker that reads EOS decrements the farm's countdown of
// live workers. While workers remain, it puts EOS back on the shared input
// for exactly one sibling to read. The worker that brings the countdown to
// zero leaves the input empty and puts the single EOS on the output. Every
// worker forwards its last result before reading EOS, so that EOS follows
// all N workers' results.
type Farm[T any] struct {
	stageBase[T]
	fn      Func[T]
	workers []*Worker[T]
	opts    options

	remaining atomic.Int32
	running   bool
}

// NewFarm creates an unwired farm of n workers applying fn.
func NewFarm[T any](n int, fn Func[T], opts ...Option) (*Farm[T], error) {
	if n < 1 {
		return nil, errors.InvalidWorkerCount(n)
	}
	if fn == nil {
		return nil, errors.InvalidInput("fn", "farm function is nil")
	}
	o := newOptions(opts)
	f := &Farm[T]{
		stageBase: newStageBase[T](KindFarm, o.name),
		fn:        fn,
		opts:      o,
		workers:   make([]*Worker[T], n),
	}
	for i := range f.workers {
		f.workers[i] = NewWorker(fn, WithName(fmt.Sprintf("%s/%d", f.name, i)))
		f.workers[i].farm = f
	}
	return f, nil
}

// Wire attaches the farm to explicit channels so it can run outside a
// Pipeline.
func (f *Farm[T]) Wire(input, output *Queue[T]) error {
	if f.attached {
		return errors.AlreadyWired(f.id)
	}
	if input == nil || output == nil {
		return errors.InvalidInput("channel", "farm needs both an input and an output channel")
	}
	f.input, f.output = input, output
	f.setWorkers()
	return nil
}

// setWorkers points every worker at the farm's channels. It runs once the
// farm's own channels are fixed.
func (f *Farm[T]) setWorkers() {
	for _, w := range f.workers {
		w.input = f.input
		w.output = f.output
		w.farm = f
		w.opts.inherit(&f.opts)
	}
}

// Size returns the number of workers.
func (f *Farm[T]) Size() int { return len(f.workers) }

// Workers returns the farm's workers in construction order. They can be
// inspected but only the farm can run them.
func (f *Farm[T]) Workers() []*Worker[T] {
	out := make([]*Worker[T], len(f.workers))
	copy(out, f.workers)
	return out
}

// Processed returns the number of items processed by all workers.
func (f *Farm[T]) Processed() int64 {
	var n int64
	for _, w := range f.workers {
		n += w.Processed()
	}
	return n
}

// Run starts every worker. It returns immediately.
func (f *Farm[T]) Run(ctx context.Context) error {
	if f.kind != KindFarm || len(f.workers) == 0 {
		return errors.UnknownStage(f.kind.String())
	}
	if !f.wired() {
		return errors.NotWired(f.id)
	}
	if f.running {
		return errors.AlreadyRunning(f.id)
	}

	for _, w := range f.workers {
		if err := w.checkRunnable(); err != nil {
			return errors.Internal(err).WithDetail(logger.FieldStage, f.id)
		}
	}

	f.opts.resolveLogger()
	f.remaining.Store(int32(len(f.workers)))
	for _, w := range f.workers {
		w.start(ctx)
	}
	f.running = true
	return nil
}

// workerDone is called by each worker when it reads EOS.
func (f *Farm[T]) workerDone() {
	if f.remaining.Add(-1) > 0 {
		f.input.Put(EOS[T]())
		return
	}
	f.output.Put(EOS[T]())
	f.opts.log.Debug("farm eos forwarded", logger.Fields(
		logger.FieldStage, f.name,
		logger.FieldWorkers, len(f.workers),
	))
}

// Collect joins every worker.
func (f *Farm[T]) Collect() {
	for _, w := range f.workers {
		w.Collect()
	}
	f.running = false
}

// Destroy joins and releases every worker.
func (f *Farm[T]) Destroy() {
	for _, w := range f.workers {
		w.Destroy()
	}
	f.running = false
	f.input, f.output = nil, nil
}
