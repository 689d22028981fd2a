package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/creator-roster/internal/filtering"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "List roster records carrying every selected tag",
	Long: `List roster records carrying every selected tag.

Tags within a field are combined with AND. An empty selection for a field
places no constraint on it. Status filtering keeps Creator and Prospect
records unless --status or --all is given.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup()
		r := loadRoster(logger, config)

		chain := filtering.New(baseFilters(cmd, config.Filter), logger)
		for _, status := range chain.Describe() {
			logger.Debug("filter", zap.String("name", status.Name), zap.Bool("enabled", status.Enabled), zap.String("reason", status.Reason))
		}

		filtered, err := chain.RunFilters(context.Background(), r)
		if err != nil {
			logger.Fatal("filtering failed", zap.Error(err))
		}

		logger.Debug("records kept", zap.Strings("records", filtered.Names()))

		if names, _ := cmd.Flags().GetBool("names"); names {
			for _, name := range filtered.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return
		}

		if err := printRecords(cmd.OutOrStdout(), filtered.Items); err != nil {
			logger.Fatal("printing records", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	addFilterFlags(filterCmd)
	filterCmd.Flags().Bool("names", false, "print record names only")
}
