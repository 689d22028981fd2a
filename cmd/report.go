package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print roster records grouped by status as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup()
		r := loadRoster(logger, config)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.ReportByStatus()); err != nil {
			logger.Fatal("encoding report", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
