package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kbukum/skeletons/channel"
)

// Kind identifies the stage variant.
type Kind int

const (
	KindWorker Kind = iota + 1
	KindFarm
	KindPipeline
)

func (k Kind) String() string {
	switch k {
	case KindWorker:
		return "worker"
	case KindFarm:
		return "farm"
	case KindPipeline:
		return "pipeline"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Queue is the channel type connecting stages.
type Queue[T any] = channel.Channel[Item[T]]

// Stage is a unit of a composition: a *Worker, *Farm or *Pipeline.
// The interface is sealed; only this package implements it.
type Stage[T any] interface {
	ID() string
	Name() string
	Kind() Kind
	Input() *Queue[T]
	Output() *Queue[T]

	base() *stageBase[T]
}

// stageBase holds the identity and wiring shared by every variant.
type stageBase[T any] struct {
	id     string
	name   string
	kind   Kind
	input  *Queue[T]
	output *Queue[T]
	// attached is set once a Pipeline owns the stage.
	attached bool
}

func newStageBase[T any](kind Kind, name string) stageBase[T] {
	id := uuid.NewString()
	if name == "" {
		name = kind.String() + "-" + id[:8]
	}
	return stageBase[T]{id: id, name: name, kind: kind}
}

// ID returns the stage's unique identifier.
func (b *stageBase[T]) ID() string { return b.id }

// Name returns the stage's display name.
func (b *stageBase[T]) Name() string { return b.name }

// Kind returns the stage variant.
func (b *stageBase[T]) Kind() Kind { return b.kind }

// Input returns the channel the stage reads from, or nil before wiring.
func (b *stageBase[T]) Input() *Queue[T] { return b.input }

// Output returns the channel the stage writes to, or nil before wiring.
func (b *stageBase[T]) Output() *Queue[T] { return b.output }

func (b *stageBase[T]) base() *stageBase[T] { return b }

func (b *stageBase[T]) wired() bool {
	return b.input != nil && b.output != nil
}
