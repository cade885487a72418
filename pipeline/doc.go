// Package pipeline provides the pipeline and farm skeletons.
//
// A Pipeline is an ordered list of stages connected by channel.Channel
// queues: stage i's output channel is stage i+1's input channel. A stage is
// either a Worker (one goroutine applying a Func to every item) or a Farm
// (N workers sharing one input and one output channel). Adding a Pipeline
// to another Pipeline flattens it, so only workers and farms ever run.
//
// Streams end with an EOS item. A Farm replicates the single upstream EOS
// so each of its workers observes one, and collapses the N resulting
// terminations into a single EOS downstream.
//
// # Execution
//
// Run is run-to-completion. In the default Sequential mode each stage is
// started and joined before the next one starts; workers inside a farm run
// concurrently with each other. WithExecution(Concurrent) starts every stage
// at once and joins them in order.
//
// # Usage
//
//	square := func(x int) int { return x * x }
//	farm, _ := pipeline.NewFarm(4, square)
//
//	p := pipeline.New[int]()
//	_ = p.AddStage(pipeline.NewWorker(inc))
//	_ = p.AddStage(farm)
//	_ = p.Put([]int{1, 2, 3})
//	_ = p.Run(ctx)
//	results := p.GetOutput()
//	_ = p.Destroy()
//
// Farm output order is not defined; only the multiset of results is.
package pipeline
