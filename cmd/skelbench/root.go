package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd, _ := newRoot()
	return cmd
}

// newRoot builds the command tree and returns the context its commands
// share.
func newRoot() (*cobra.Command, *commandContext) {
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "skelbench",
		Short:         "Benchmark farm and pipeline skeletons",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			return ctx.startTelemetry(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.shutdown(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newFarmCommand(ctx))
	rootCmd.AddCommand(newPipelineCommand(ctx))
	rootCmd.AddCommand(newDescribeCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd, ctx
}
