package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/creator-roster/internal/roster"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the roster as CSV or as a JSON dump",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup()
		r := loadRoster(logger, config)

		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		switch format {
		case "json":
			path, err := r.DumpToTmpFile()
			if err != nil {
				logger.Fatal("dumping roster", zap.Error(err))
			}
			logger.Info("roster dumped", zap.String("path", path), zap.Int("count", r.Len()))
			fmt.Fprintln(cmd.OutOrStdout(), path)
		case "csv":
			if out == "" {
				if err := roster.WriteCSV(cmd.OutOrStdout(), r); err != nil {
					logger.Fatal("writing roster", zap.Error(err))
				}
				return
			}
			if err := roster.SaveFile(out, r); err != nil {
				logger.Fatal("writing roster", zap.String("path", out), zap.Error(err))
			}
			logger.Info("roster exported", zap.String("path", out), zap.Int("count", r.Len()))
		default:
			logger.Fatal("unsupported export format", zap.String("format", format))
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "f", "csv", "export format: csv or json")
	exportCmd.Flags().StringP("out", "o", "", "csv output file (default is stdout)")
}
