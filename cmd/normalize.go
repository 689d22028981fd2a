package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/creator-roster/internal/logger"
	"github.com/spigell/creator-roster/internal/tags"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Rewrite every tag field of the roster in canonical form",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		log, config := setup()
		r := readRoster(log, config)

		changed := 0
		for i := range r.Items {
			if tags.NormalizeRecord(&r.Items[i]) {
				changed++
				log.Debug("record normalized", logger.RecordFields(&r.Items[i])...)
			}
		}

		if changed == 0 {
			log.Info("roster already normalized", zap.Int("count", r.Len()))
			return
		}

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			log.Info("dry run, roster not saved", zap.Int("changed", changed))
			return
		}

		saveRoster(log, config, r)
		log.Info("roster normalized", zap.Int("changed", changed))
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().Bool("dry-run", false, "report changes without saving the roster")
}
