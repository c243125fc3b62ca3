package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/compile"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch FILE...",
	Short: "Re-check script files whenever they change",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		recheck := func(ctx context.Context) {
			report, err := checkFiles(cmd, args)
			out := cmd.OutOrStdout()
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				return
			}
			failed := report.Failed()
			for _, res := range failed {
				fmt.Fprintln(out, res)
			}
			fmt.Fprintf(out, "-- %s: %d commands, %d failed\n", time.Now().Format(time.TimeOnly), len(report.Results), len(failed))
		}

		w, err := compile.NewWatcher(args, watchDebounce, logger, recheck)
		if err != nil {
			return err
		}
		recheck(ctx)
		logger.Info("watching", zap.Strings("files", args))
		return w.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", compile.DefaultDebounce, "Wait for writes to settle this long")
}
