package report

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kbukum/skeletons/bench"
	"github.com/kbukum/skeletons/version"
)

// Alignment is a column alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// RenderTable renders rows under headers. Short rows are padded.
func RenderTable(headers []string, rows [][]string, aligns []Alignment, footer ...string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}
	if len(footer) > 0 {
		tw.AppendFooter(toRow(footer, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func toRow(values []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := range columns {
		if i < len(values) {
			r[i] = values[i]
		} else {
			r[i] = ""
		}
	}
	return r
}

// Timings renders one row per round of res with a total footer.
func Timings(res *bench.Result) string {
	rows := make([][]string, 0, len(res.Timings))
	for _, t := range res.Timings {
		rows = append(rows, []string{
			fmt.Sprint(t.Round),
			fmt.Sprint(t.Batch),
			millis(t.Elapsed),
			fmt.Sprintf("%.1f", t.Throughput()),
		})
	}
	total := bench.Timing{Batch: res.Items(), Elapsed: res.Total()}
	return RenderTable(
		[]string{"Round", "Batch", "Elapsed (ms)", "Items/s"},
		rows,
		[]Alignment{AlignRight, AlignRight, AlignRight, AlignRight},
		"Total", fmt.Sprint(total.Batch), millis(total.Elapsed), fmt.Sprintf("%.1f", total.Throughput()),
	)
}

// Summary renders the benchmark parameters and host details as a key/value
// table.
func Summary(res *bench.Result, info *version.Info) string {
	rows := [][]string{
		{"Benchmark", res.Name},
		{"Mode", res.Mode},
		{"Stages", fmt.Sprint(res.Stages)},
		{"Farm workers", fmt.Sprint(res.Workers)},
		{"Fib N", fmt.Sprint(res.FibN)},
	}
	if info != nil {
		rows = append(rows,
			[]string{"Platform", info.Platform},
			[]string{"CPUs", fmt.Sprint(info.NumCPU)},
			[]string{"Go", info.GoVersion},
			[]string{"Version", info.Version},
		)
	}
	return RenderTable([]string{"Setting", "Value"}, rows, []Alignment{AlignLeft, AlignRight})
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d)/float64(time.Millisecond))
}
