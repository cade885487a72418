package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/skeletons/errors"
	"github.com/kbukum/skeletons/logger"
	"github.com/kbukum/skeletons/observability"
)

// Status is a Worker's lifecycle state.
type Status int32

const (
	StatusWaiting Status = iota
	StatusProcessing
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusProcessing:
		return "processing"
	case StatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// Worker applies a Func to every item of its input channel on its own
// goroutine until it reads EOS.
type Worker[T any] struct {
	stageBase[T]
	fn   Func[T]
	opts options

	// farm is set for workers owned by a Farm; it takes over EOS handling.
	farm *Farm[T]

	status    atomic.Int32
	processed atomic.Int64
	done      chan struct{}
}

// NewWorker creates an unwired Worker applying fn.
func NewWorker[T any](fn Func[T], opts ...Option) *Worker[T] {
	o := newOptions(opts)
	return &Worker[T]{
		stageBase: newStageBase[T](KindWorker, o.name),
		fn:        fn,
		opts:      o,
	}
}

// Wire attaches the worker to explicit channels so it can run outside a
// Pipeline. Workers owned by a Pipeline or Farm cannot be rewired.
func (w *Worker[T]) Wire(input, output *Queue[T]) error {
	if w.attached || w.farm != nil {
		return errors.AlreadyWired(w.id)
	}
	if input == nil || output == nil {
		return errors.InvalidInput("channel", "worker needs both an input and an output channel")
	}
	w.input, w.output = input, output
	return nil
}

// Status returns the current lifecycle state.
func (w *Worker[T]) Status() Status { return Status(w.status.Load()) }

// Processed returns the number of items processed over the worker's lifetime.
func (w *Worker[T]) Processed() int64 { return w.processed.Load() }

// Run starts the worker goroutine. It returns immediately. Workers owned by
// a Farm are started only through the Farm.
func (w *Worker[T]) Run(ctx context.Context) error {
	if w.farm != nil {
		return errors.AlreadyWired(w.id).WithDetail("farm", w.farm.id)
	}
	if err := w.checkRunnable(); err != nil {
		return err
	}
	w.start(ctx)
	return nil
}

func (w *Worker[T]) checkRunnable() error {
	if w.kind != KindWorker || w.fn == nil {
		return errors.UnknownStage(w.kind.String())
	}
	if !w.wired() {
		return errors.NotWired(w.id)
	}
	if w.done != nil {
		return errors.AlreadyRunning(w.id)
	}
	return nil
}

// start launches the goroutine of a worker that passed checkRunnable.
func (w *Worker[T]) start(ctx context.Context) {
	log := w.opts.resolveLogger()
	metrics := w.opts.resolveMetrics()
	kind := KindWorker.String()
	if w.farm != nil {
		kind = KindFarm.String()
	}

	w.status.Store(int32(StatusWaiting))
	done := make(chan struct{})
	w.done = done
	go w.loop(ctx, done, log, metrics, kind)
}

func (w *Worker[T]) loop(ctx context.Context, done chan struct{}, log *logger.Logger, metrics *observability.StageMetrics, kind string) {
	defer close(done)
	for {
		it := w.input.Get()
		if it.IsEOS() {
			if w.farm != nil {
				w.farm.workerDone()
			} else {
				w.output.Put(EOS[T]())
			}
			w.status.Store(int32(StatusFinished))
			log.Debug("eos observed", logger.Fields(
				logger.FieldStage, w.name,
				logger.FieldItems, w.processed.Load(),
			))
			return
		}
		w.status.CompareAndSwap(int32(StatusWaiting), int32(StatusProcessing))
		w.output.Put(NewItem(w.fn(it.Value())))
		w.processed.Add(1)
		metrics.RecordItem(ctx, kind)
	}
}

// Collect blocks until the worker goroutine has exited. Collect on a worker
// that is not running returns immediately.
func (w *Worker[T]) Collect() {
	if w.done == nil {
		return
	}
	<-w.done
	w.done = nil
}

// Destroy joins the worker goroutine and drops its channel references. The
// channels themselves are owned by the enclosing composition and are not
// destroyed here.
func (w *Worker[T]) Destroy() {
	w.Collect()
	w.input, w.output = nil, nil
}
