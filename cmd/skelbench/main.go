package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/skeletons/errors"
	"github.com/kbukum/skeletons/logger"
)

func main() {
	cmd, cctx := newRoot()
	if err := execute(context.Background(), cmd, cctx); err != nil {
		if errors.IsFatal(err) {
			logger.Fatal("skelbench failed", logger.ErrorFields("run", err))
		}
		if !stderrors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// execute runs the command tree. Cobra skips PersistentPostRunE when a
// command fails, so telemetry is flushed here before the error is returned.
func execute(ctx context.Context, cmd *cobra.Command, cctx *commandContext) error {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if serr := cctx.shutdown(context.WithoutCancel(ctx)); serr != nil {
		logger.Warn("telemetry flush failed", logger.ErrorFields("shutdown", serr))
	}
	return err
}
