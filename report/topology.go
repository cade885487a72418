package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/list"

	"github.com/kbukum/skeletons/pipeline"
)

// Topology renders p as a tree: the pipeline, each stage with its input and
// output channels, and each farm's workers. Channels are labelled ch0, ch1,
// ... in order of first appearance.
func Topology[T any](p *pipeline.Pipeline[T]) string {
	labels := channelLabels[T]{ids: map[*pipeline.Queue[T]]int{}}
	for st := range p.Leaves() {
		labels.of(st.Input())
		labels.of(st.Output())
	}

	lw := list.NewWriter()
	lw.SetStyle(list.StyleConnectedRounded)
	lw.AppendItem(fmt.Sprintf("pipeline %s [%s] %d stages, %s -> %s",
		p.Name(), p.Mode(), p.Len(), labels.of(p.Input()), labels.of(p.Output())))

	lw.Indent()
	for st := range p.Leaves() {
		lw.AppendItem(fmt.Sprintf("%s %s: %s -> %s",
			st.Kind(), st.Name(), labels.of(st.Input()), labels.of(st.Output())))
		if farm, ok := st.(*pipeline.Farm[T]); ok {
			lw.Indent()
			for _, w := range farm.Workers() {
				lw.AppendItem(fmt.Sprintf("worker %s (%s, %d processed)", w.Name(), w.Status(), w.Processed()))
			}
			lw.UnIndent()
		}
	}
	lw.UnIndent()

	return lw.Render()
}

type channelLabels[T any] struct {
	ids map[*pipeline.Queue[T]]int
}

func (c channelLabels[T]) of(q *pipeline.Queue[T]) string {
	if q == nil {
		return "-"
	}
	id, ok := c.ids[q]
	if !ok {
		id = len(c.ids)
		c.ids[q] = id
	}
	return fmt.Sprintf("ch%d", id)
}
