package cmd

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/creator-roster/internal/filtering"
	"github.com/spigell/creator-roster/internal/logger"
	"github.com/spigell/creator-roster/internal/matching"
	"github.com/spigell/creator-roster/internal/roster"
	"github.com/spigell/creator-roster/internal/tags"
)

const (
	flagVertical          = "vertical"
	flagPreferredCategory = "preferred-category"
	flagAvoidedCategory   = "avoided-category"
	flagStatus            = "status"
	flagAllStatuses       = "all"
)

// setup builds the logger and reads the config shared by every roster command.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return logger, config
}

// loadRoster reads the roster file and brings every tag field into canonical
// form, so hand-edited files behave like ones written by add.
func loadRoster(log *zap.Logger, config *Config) *roster.Roster {
	r := readRoster(log, config)
	for i := range r.Items {
		if tags.NormalizeRecord(&r.Items[i]) {
			log.Debug("tags normalized on load", logger.RecordFields(&r.Items[i])...)
		}
	}
	return r
}

// readRoster reads the roster file as stored.
func readRoster(logger *zap.Logger, config *Config) *roster.Roster {
	path := rosterPath(config)
	r, err := roster.LoadFile(path)
	if err != nil {
		logger.Fatal("loading roster", zap.String("path", path), zap.Error(err))
	}
	logger.Debug("roster loaded", zap.String("path", path), zap.Int("count", r.Len()))
	return r
}

func saveRoster(logger *zap.Logger, config *Config, r *roster.Roster) {
	path := rosterPath(config)
	if err := roster.SaveFile(path, r); err != nil {
		logger.Fatal("saving roster", zap.String("path", path), zap.Error(err))
	}
	logger.Info("roster saved", zap.String("path", path), zap.Int("count", r.Len()))
}

func rosterPath(config *Config) string {
	if path := strings.TrimSpace(config.RosterFile); path != "" {
		return path
	}
	return defaultRosterFile
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice(flagVertical, nil, "required vertical tag (repeatable)")
	cmd.Flags().StringSlice(flagPreferredCategory, nil, "required preferred brand category tag (repeatable)")
	cmd.Flags().StringSlice(flagAvoidedCategory, nil, "required avoided brand category tag (repeatable)")
	cmd.Flags().StringSlice(flagStatus, nil, "statuses to include (default Creator,Prospect)")
	cmd.Flags().Bool(flagAllStatuses, false, "include records of every status")
}

// selections merges tag flags over the filter section of the config. A flag,
// when given, replaces the configured tags for its field.
func selections(cmd *cobra.Command, cfg *FilterConfig) matching.Selections {
	pick := func(flag string, configured []string) []string {
		if cmd.Flags().Changed(flag) {
			values, _ := cmd.Flags().GetStringSlice(flag)
			return values
		}
		return configured
	}

	return matching.Selections{
		roster.FieldVerticals:                pick(flagVertical, cfg.Verticals),
		roster.FieldPreferredBrandCategories: pick(flagPreferredCategory, cfg.PreferredBrandCategories),
		roster.FieldAvoidedBrandCategories:   pick(flagAvoidedCategory, cfg.AvoidedBrandCategories),
	}
}

// baseFilters returns the status and tag steps configured by flags and config.
func baseFilters(cmd *cobra.Command, cfg *FilterConfig) []filtering.Filter {
	statuses := cfg.Statuses
	if cmd.Flags().Changed(flagStatus) {
		statuses, _ = cmd.Flags().GetStringSlice(flagStatus)
	}

	status := filtering.NewStatus(statuses)
	if all, _ := cmd.Flags().GetBool(flagAllStatuses); all {
		status.Disable("--all flag is set")
	}

	return []filtering.Filter{status, filtering.NewTags(selections(cmd, cfg))}
}

// resolveTagField maps user input such as "verticals" onto a tag field name.
func resolveTagField(input string) (string, error) {
	input = strings.TrimSpace(input)
	for _, field := range roster.TagFields {
		if strings.EqualFold(field, input) || strings.EqualFold(strings.ReplaceAll(field, " ", "-"), input) {
			return field, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of: %s)", matching.ErrUnknownField, input, strings.Join(roster.TagFields, ", "))
}

func printRecords(out io.Writer, records []roster.Record) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS\tPLATFORM\tVIEWS\tVERTICALS")
	for i := range records {
		rec := &records[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			rec.Name, rec.Status, rec.Platform, strconv.FormatInt(rec.MonthlyViews, 10), tags.Display(rec.Verticals))
	}
	return w.Flush()
}
