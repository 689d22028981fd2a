package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/creator-roster/internal/tags"
)

var tagsCmd = &cobra.Command{
	Use:   "tags <field>",
	Short: "List the distinct tags used in a tag field",
	Long: `List the distinct tags used in a tag field, sorted.

The field is one of "Verticals", "Preferred Brand Categories" or
"Avoided Brand Categories". Lower-case and hyphenated forms such as
"preferred-brand-categories" are accepted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger, config := setup()

		field, err := resolveTagField(args[0])
		if err != nil {
			logger.Fatal("resolving tag field", zap.Error(err))
		}

		r := loadRoster(logger, config)
		for _, tag := range tags.Options(r.Items, field) {
			fmt.Fprintln(cmd.OutOrStdout(), tag)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
