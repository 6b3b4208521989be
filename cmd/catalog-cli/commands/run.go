package commands

import (
	"log/slog"
	"time"
	"ustcatalog/lib/serviceutil"
	"ustcatalog/lib/telemetry"

	"github.com/spf13/cobra"
)

var runInterval *time.Duration

func init() {
	runInterval = runCmd.Flags().Duration("interval", 0, "Rerun every interval instead of exiting (0 runs once).")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--interval <duration>]",
	Short: "Pull the current term then update its JSON documents.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, closeCache := createService()
		defer closeCache()

		if *runInterval <= 0 {
			err := svc.Run(cmd.Context())
			if err != nil {
				serviceutil.Fatal("run failed", err)
			}
			return
		}

		ctx := serviceutil.SignalContext()
		telemetry.InstrumentPerfStats(ctx)

		ticker := time.NewTicker(*runInterval)
		defer ticker.Stop()
		for {
			err := svc.Run(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "run failed", "err", err)
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				slog.Info("shutting down")
				return
			}
		}
	},
}
