package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/skeletons/bench"
	"github.com/kbukum/skeletons/logger"
	"github.com/kbukum/skeletons/pipeline"
	"github.com/kbukum/skeletons/report"
	"github.com/kbukum/skeletons/version"
)

// benchFlags are the flags shared by the benchmark commands. Only flags the
// user set override the loaded configuration.
type benchFlags struct {
	workers    int
	rounds     int
	fibN       int
	items      int
	stages     int
	concurrent bool
	json       bool
}

func (f *benchFlags) apply(cmd *cobra.Command, opts *bench.Options) {
	flags := cmd.Flags()
	if flags.Changed("workers") || flags.Changed("farm-workers") {
		opts.Workers = f.workers
	}
	if flags.Changed("rounds") {
		opts.Rounds = f.rounds
	}
	if flags.Changed("fib") {
		opts.FibN = f.fibN
	}
	if flags.Changed("items") {
		opts.Items = f.items
	}
	if flags.Changed("stages") {
		opts.Stages = f.stages
	}
	if flags.Changed("concurrent") {
		opts.Mode = pipeline.Sequential
		if f.concurrent {
			opts.Mode = pipeline.Concurrent
		}
	}
}

func newFarmCommand(ctx *commandContext) *cobra.Command {
	var flags benchFlags

	cmd := &cobra.Command{
		Use:   "farm",
		Short: "Time one farm over batches that double in size each round",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := ctx.benchOptions()
			flags.apply(cmd, &opts)

			res, err := bench.MeasureFarm(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printResult(cmd, res, flags.json)
		},
	}

	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Number of farm workers")
	cmd.Flags().IntVar(&flags.rounds, "rounds", 0, "Number of batches; each doubles the previous")
	cmd.Flags().IntVar(&flags.fibN, "fib", 0, "Fibonacci index computed per item")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output results as JSON")
	return cmd
}

func newPipelineCommand(ctx *commandContext) *cobra.Command {
	var flags benchFlags

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Time a chain of alternating workers and farms",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := ctx.benchOptions()
			flags.apply(cmd, &opts)

			res, err := bench.MeasurePipeline(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printResult(cmd, res, flags.json)
		},
	}

	addPipelineFlags(cmd, &flags)
	cmd.Flags().IntVar(&flags.items, "items", 0, "Number of items pushed through the pipeline")
	cmd.Flags().IntVar(&flags.fibN, "fib", 0, "Fibonacci index computed per item")
	cmd.Flags().BoolVar(&flags.concurrent, "concurrent", false, "Start every stage before collecting any")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output results as JSON")
	return cmd
}

func newDescribeCommand(ctx *commandContext) *cobra.Command {
	var flags benchFlags

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the topology of the benchmark pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := ctx.benchOptions()
			flags.apply(cmd, &opts)

			p, err := bench.BuildPipeline(opts)
			if err != nil {
				return err
			}
			defer p.Destroy()
			fmt.Fprintln(cmd.OutOrStdout(), report.Topology(p))
			return nil
		},
	}

	addPipelineFlags(cmd, &flags)
	return cmd
}

func addPipelineFlags(cmd *cobra.Command, flags *benchFlags) {
	cmd.Flags().IntVar(&flags.stages, "stages", 0, "Number of stages, alternating worker and farm")
	cmd.Flags().IntVar(&flags.workers, "farm-workers", 0, "Number of workers in each farm")
}

func printResult(cmd *cobra.Command, res *bench.Result, asJSON bool) error {
	logger.Info("benchmark complete", logger.Fields(
		"benchmark", res.Name,
		logger.FieldItems, res.Items(),
		logger.FieldDuration, res.Total().Milliseconds(),
	))
	if asJSON {
		return writeJSON(cmd, res)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Summary(res, version.Current()))
	fmt.Fprintln(out, report.Timings(res))
	return nil
}
