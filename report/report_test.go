package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/skeletons/bench"
	"github.com/kbukum/skeletons/logger"
	"github.com/kbukum/skeletons/pipeline"
	"github.com/kbukum/skeletons/version"
)

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Name", "Count"},
		[][]string{{"alpha", "1"}, {"beta"}},
		[]Alignment{AlignLeft, AlignRight},
	)
	for _, want := range []string{"NAME", "COUNT", "alpha", "beta"} {
		requireContains(t, out, want)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 6 {
		t.Errorf("expected 6 lines (border, header, separator, 2 rows, border), got %d:\n%s", len(lines), out)
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := RenderTable(nil, [][]string{{"x"}}, nil); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestTimings(t *testing.T) {
	res := &bench.Result{
		Name: "farm",
		Timings: []bench.Timing{
			{Round: 0, Batch: 1, Elapsed: 2 * time.Millisecond},
			{Round: 1, Batch: 2, Elapsed: 3 * time.Millisecond},
		},
	}
	out := Timings(res)
	requireContains(t, out, "ELAPSED (MS)")
	requireContains(t, out, "2.000")
	requireContains(t, out, "3.000")
	requireContains(t, out, "5.000")
	requireContains(t, out, "TOTAL")
	requireContains(t, out, "600.0")
}

func TestSummary(t *testing.T) {
	res := &bench.Result{Name: "pipeline", Mode: "concurrent", Stages: 3, Workers: 4, FibN: 90}
	info := &version.Info{Version: "1.2.3", Platform: "linux/amd64", NumCPU: 8, GoVersion: "go1.26.0"}

	out := Summary(res, info)
	for _, want := range []string{"pipeline", "concurrent", "Farm workers", "linux/amd64", "go1.26.0", "1.2.3"} {
		requireContains(t, out, want)
	}

	if strings.Contains(Summary(res, nil), "Platform") {
		t.Error("expected no host rows without version info")
	}
}

func TestTopology(t *testing.T) {
	farm, err := pipeline.NewFarm(2, bench.Compute, pipeline.WithName("fib"))
	if err != nil {
		t.Fatalf("NewFarm failed: %v", err)
	}
	p := pipeline.New[bench.Task](pipeline.WithName("demo"), pipeline.WithLogger(logger.Nop()))
	defer p.Destroy()
	_ = p.AddStage(pipeline.NewWorker(bench.Compute, pipeline.WithName("head")))
	_ = p.AddStage(farm)

	out := Topology(p)
	for _, want := range []string{
		"pipeline demo [sequential] 2 stages, ch0 -> ch2",
		"worker head: ch0 -> ch1",
		"farm fib: ch1 -> ch2",
		"worker fib/0 (waiting, 0 processed)",
		"worker fib/1",
	} {
		requireContains(t, out, want)
	}

	_ = p.Put(bench.NewBatch(0, 4, 5))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	requireContains(t, Topology(p), "finished")
}

func TestTopologyEmpty(t *testing.T) {
	out := Topology(pipeline.New[int](pipeline.WithName("empty"), pipeline.WithLogger(logger.Nop())))
	requireContains(t, out, "pipeline empty [sequential] 0 stages, - -> -")
}
