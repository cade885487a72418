package pipeline

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"testing"
	"time"
)

func square(x int) int { return x * x }
func inc(x int) int    { return x + 1 }
func double(x int) int { return x * 2 }

// runWithin fails the test instead of hanging when Run does not return.
func runWithin[T any](t *testing.T, p *Pipeline[T], d time.Duration) {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- p.Run(context.Background()) }()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	case <-time.After(d):
		t.Fatalf("Run did not return within %v", d)
	}
}

func mustFarm[T any](t *testing.T, n int, fn Func[T], opts ...Option) *Farm[T] {
	t.Helper()
	f, err := NewFarm(n, fn, opts...)
	if err != nil {
		t.Fatalf("NewFarm(%d) failed: %v", n, err)
	}
	return f
}

func mustAdd(t *testing.T, p *Pipeline[int], stages ...Stage[int]) {
	t.Helper()
	for _, st := range stages {
		if err := p.AddStage(st); err != nil {
			t.Fatalf("AddStage(%s) failed: %v", st.Name(), err)
		}
	}
}

func sorted(xs []int) []int {
	out := slices.Clone(xs)
	slices.Sort(out)
	return out
}

func intRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func mapInts(xs []int, fns ...func(int) int) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		for _, fn := range fns {
			x = fn(x)
		}
		out[i] = x
	}
	return out
}

// syncBuffer is a bytes.Buffer safe for concurrent log writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
