package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/creator-roster/internal/logger"
	"github.com/spigell/creator-roster/internal/roster"
	"github.com/spigell/creator-roster/internal/tags"
)

var errNameRequired = errors.New("name is required")

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a creator to the roster",
	Long: `Add a creator to the roster.

Without --name every field is asked for interactively. Tag fields accept
comma or newline separated values and are stored in canonical form.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		log, config := setup()
		r := loadRoster(log, config)

		values, err := recordValues(cmd)
		if err != nil {
			log.Fatal("reading record", zap.Error(err))
		}

		rec, err := roster.FromMap(values)
		if err != nil {
			log.Fatal("invalid record", zap.Error(err))
		}
		tags.NormalizeRecord(&rec)

		if err := r.Add(rec); err != nil {
			log.Fatal("adding record", zap.Error(err))
		}

		saveRoster(log, config, r)
		log.Info("record added", logger.RecordFields(&rec)...)
	},
}

// addFlags maps flag names onto record columns.
var addFlags = []struct {
	flag   string
	column string
}{
	{"name", roster.FieldName},
	{"status", roster.FieldStatus},
	{"email", roster.FieldEmail},
	{"location", roster.FieldLocation},
	{"platform", roster.FieldPlatform},
	{"channel-url", roster.FieldChannelURL},
	{"monthly-views", roster.FieldMonthlyViews},
	{"verticals", roster.FieldVerticals},
	{"audience", roster.FieldAudienceDemographics},
	{"preferred-brands", roster.FieldPreferredBrands},
	{"avoided-brands", roster.FieldAvoidedBrands},
	{"preferred-categories", roster.FieldPreferredBrandCategories},
	{"avoided-categories", roster.FieldAvoidedBrandCategories},
	{"notes", roster.FieldNotes},
}

func init() {
	rootCmd.AddCommand(addCmd)

	for _, f := range addFlags {
		addCmd.Flags().String(f.flag, "", fmt.Sprintf("%s of the record", strings.ToLower(f.column)))
	}
}

func recordValues(cmd *cobra.Command) (map[string]any, error) {
	values := make(map[string]any, len(addFlags))
	if cmd.Flags().Changed("name") {
		for _, f := range addFlags {
			v, _ := cmd.Flags().GetString(f.flag)
			values[f.column] = v
		}
		return values, nil
	}

	for _, column := range roster.Columns {
		v, err := promptField(column)
		if err != nil {
			return nil, err
		}
		values[column] = v
	}
	return values, nil
}

func promptField(column string) (string, error) {
	if column == roster.FieldStatus {
		items := make([]string, 0, len(roster.Statuses))
		for _, s := range roster.Statuses {
			items = append(items, string(s))
		}
		statusPrompt := promptui.Select{Label: column, Items: items}
		_, selected, err := statusPrompt.Run()
		return selected, err
	}

	p := promptui.Prompt{Label: column}
	switch column {
	case roster.FieldName:
		p.Validate = validateName
	case roster.FieldMonthlyViews:
		p.Default = "0"
		p.Validate = validateViews
	}
	return p.Run()
}

func validateName(input string) error {
	if strings.TrimSpace(input) == "" {
		return errNameRequired
	}
	return nil
}

func validateViews(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return fmt.Errorf("not a whole number: %q", input)
	}
	if n < 0 {
		return roster.ErrNegativeViews
	}
	return nil
}
