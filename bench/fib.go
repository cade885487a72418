package bench

// Fib returns the nth Fibonacci number, computed iteratively, with
// Fib(n) = 1 for n <= 1. Values past the int range wrap; the loop length is
// the point.
func Fib(n int) int {
	prev, cur := 0, 1
	for i := 2; i <= n; i++ {
		prev, cur = cur, prev+cur
	}
	return cur
}

// Task is one unit of benchmark work.
type Task struct {
	ID     int
	N      int
	Result int
	// Hops counts the stages the task has passed through.
	Hops int
}

// Compute evaluates the task's Fibonacci number. It is the stage function
// used by every benchmark.
func Compute(t Task) Task {
	t.Result = Fib(t.N)
	t.Hops++
	return t
}

// NewBatch returns size tasks with consecutive IDs starting at first.
func NewBatch(first, size, n int) []Task {
	tasks := make([]Task, size)
	for i := range tasks {
		tasks[i] = Task{ID: first + i, N: n}
	}
	return tasks
}
