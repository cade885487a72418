package pipeline_test

import (
	"context"
	"fmt"
	"slices"

	"github.com/kbukum/skeletons/logger"
	"github.com/kbukum/skeletons/pipeline"
)

func Example() {
	p := pipeline.New[int](pipeline.WithLogger(logger.Nop()))
	defer p.Destroy()

	_ = p.AddStage(pipeline.NewWorker(func(x int) int { return x * x }))
	_ = p.Put([]int{2, 3, 4})
	if err := p.Run(context.Background()); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.GetOutput())
	// Output: [4 9 16]
}

func ExampleNewFarm() {
	farm, err := pipeline.NewFarm(3, func(x int) int { return x * x })
	if err != nil {
		fmt.Println(err)
		return
	}

	p := pipeline.New[int](pipeline.WithLogger(logger.Nop()))
	defer p.Destroy()
	_ = p.AddStage(farm)
	_ = p.Put([]int{2, 3, 4, 5, 6})
	_ = p.Run(context.Background())

	// Farm output order is unspecified.
	out := p.GetOutput()
	slices.Sort(out)
	fmt.Println(out)
	// Output: [4 9 16 25 36]
}

func ExamplePipeline_AddStage_nested() {
	inner := pipeline.New[int]()
	_ = inner.AddStage(pipeline.NewWorker(func(x int) int { return x + 1 }))
	_ = inner.AddStage(pipeline.NewWorker(func(x int) int { return x * 2 }))

	outer := pipeline.New[int](pipeline.WithLogger(logger.Nop()))
	defer outer.Destroy()
	_ = outer.AddStage(inner)
	_ = outer.AddStage(pipeline.NewWorker(func(x int) int { return x - 1 }))

	fmt.Println(outer.Len(), inner.Len())
	_ = outer.Put([]int{1, 2, 3})
	_ = outer.Run(context.Background())
	fmt.Println(outer.GetOutput())
	// Output:
	// 3 0
	// [3 5 7]
}
