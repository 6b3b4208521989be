package commands

import (
	"log/slog"
	"ustcatalog/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update <term>",
	Short: "Parse the stored pages of a term and write its JSON documents.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, closeCache := createService()
		defer closeCache()

		term := args[0]
		err := svc.Update(cmd.Context(), term)
		if err != nil {
			serviceutil.Fatal("update failed", err)
		}
		slog.Info("updated term documents", "term", term)
	},
}
