package commands

import (
	"log/slog"
	"time"
	"ustcatalog/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pullCmd)
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch every subject page of the current term into the data directory.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, closeCache := createService()
		defer closeCache()

		t1 := time.Now()
		term, err := svc.Pull(cmd.Context())
		if err != nil {
			serviceutil.Fatal("pull failed", err)
		}
		t2 := time.Now()

		slog.Info("pulled term", "term", term, "seconds", t2.Sub(t1).Seconds())
	},
}
