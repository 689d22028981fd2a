package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/creator-roster/internal/ai"
	"github.com/spigell/creator-roster/internal/ai/gemini"
	"github.com/spigell/creator-roster/internal/filtering"
	"github.com/spigell/creator-roster/internal/matching"
	"github.com/spigell/creator-roster/internal/roster"
	"github.com/spigell/creator-roster/internal/secrets"
	"github.com/spigell/creator-roster/internal/tags"
)

const promptBack = "back"

var matchCmd = &cobra.Command{
	Use:   "match <brand deal description>",
	Short: "Rank roster records against a brand deal description",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runMatch(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().IntP("top", "n", 0, "number of matches to show (default from config, 5)")
	matchCmd.Flags().Bool("ai", false, "ask the AI provider for a fit assessment of every match")
	matchCmd.Flags().BoolP("interactive", "i", false, "browse matches interactively")
	addFilterFlags(matchCmd)
}

func runMatch(cmd *cobra.Command, description string) {
	ctx := context.Background()
	logger, config := setup()

	if strings.TrimSpace(description) == "" {
		logger.Info("exiting", zap.String("reason", "empty brand deal description"))
		return
	}

	r := loadRoster(logger, config)

	filtered, err := filtering.New(baseFilters(cmd, config.Filter), logger).RunFilters(ctx, r)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	topN := config.Match.TopN
	if cmd.Flags().Changed("top") {
		topN, _ = cmd.Flags().GetInt("top")
	}

	results := matching.Match(description, filtered.Items, topN)
	logger.Info("keyword matching", zap.Int("candidates", filtered.Len()), zap.Int("matches", len(results)), zap.Int("top_n", topN))
	if len(results) == 0 {
		logger.Info("exiting", zap.String("reason", "no records share a keyword with the description"))
		return
	}

	useAI, _ := cmd.Flags().GetBool("ai")
	var assessments map[string]*ai.FitAssessment
	if useAI || config.AI.Enabled {
		results, assessments = assessWithAI(ctx, config.AI, description, results, logger)
	}

	if err := printMatches(cmd.OutOrStdout(), results, assessments); err != nil {
		logger.Fatal("printing matches", zap.Error(err))
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := browseMatches(cmd.OutOrStdout(), results, assessments); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// assessWithAI runs the ai_fit filter over keyword matches. Matches the
// provider rejects are removed; ranking order is kept.
func assessWithAI(ctx context.Context, cfg *AIConfig, description string, results []matching.Result, logger *zap.Logger) ([]matching.Result, map[string]*ai.FitAssessment) {
	matcher, err := newAIMatcher(ctx, cfg, logger)
	if err != nil {
		logger.Warn("skipping AI assessment", zap.Error(err))
		return results, nil
	}

	matched := make([]roster.Record, 0, len(results))
	for _, res := range results {
		matched = append(matched, res.Record)
	}

	chain := filtering.New([]filtering.Filter{
		filtering.NewAIFit(&filtering.AIFitFilterConfig{
			Enabled:         true,
			Provider:        cfg.Provider,
			Model:           cfg.Gemini.Model,
			MinimumFitScore: cfg.MinimumFitScore,
			Deal:            description,
		}, matcher, logger),
	}, logger)

	approved, err := chain.RunFilters(ctx, roster.New(matched...))
	if err != nil {
		logger.Warn("AI assessment failed, showing keyword matches only", zap.Error(err))
		return results, nil
	}

	kept := make([]matching.Result, 0, approved.Len())
	for _, res := range results {
		if approved.FindByName(res.Record.Name) != nil {
			kept = append(kept, res)
		}
	}
	return kept, chain.Assessments()
}

func newAIMatcher(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Matcher, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewMatcher(generator, cfg.MinimumFitScore, cfg.Gemini.MaxLogLength, logger), nil
}

func printMatches(out io.Writer, results []matching.Result, assessments map[string]*ai.FitAssessment) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if assessments != nil {
		fmt.Fprintln(w, "#\tNAME\tSCORE\tAI\tVERTICALS\tPITCH")
	} else {
		fmt.Fprintln(w, "#\tNAME\tSCORE\tVERTICALS")
	}

	for i, res := range results {
		if assessments == nil {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, res.Record.Name, res.Score, tags.Display(res.Record.Verticals))
			continue
		}
		aiScore, pitch := "-", ""
		if a := assessments[res.Record.Name]; a != nil {
			aiScore = fmt.Sprintf("%.2f", a.Score)
			pitch = a.Pitch
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n", i+1, res.Record.Name, res.Score, aiScore, tags.Display(res.Record.Verticals), pitch)
	}
	return w.Flush()
}

func browseMatches(out io.Writer, results []matching.Result, assessments map[string]*ai.FitAssessment) error {
	items := make([]string, 0, len(results)+1)
	for _, res := range results {
		items = append(items, res.Record.Name)
	}

	for {
		selectPrompt := promptui.Select{
			Label: "Choose a record and press ENTER",
			Items: append(items, promptBack),
		}

		idx, selected, err := selectPrompt.Run()
		if err != nil {
			return err
		}
		if selected == promptBack {
			return nil
		}

		printDetails(out, &results[idx].Record, assessments[selected])
	}
}

func printDetails(out io.Writer, rec *roster.Record, assessment *ai.FitAssessment) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, column := range roster.Columns {
		value, _ := rec.Field(column)
		if matching.IsTagField(column) {
			value = tags.Display(value)
		}
		fmt.Fprintf(w, "%s:\t%s\n", column, strings.ReplaceAll(value, "\n", " "))
	}
	if assessment != nil {
		fmt.Fprintf(w, "AI score:\t%.2f\n", assessment.Score)
		fmt.Fprintf(w, "AI reason:\t%s\n", assessment.Reason)
		fmt.Fprintf(w, "AI pitch:\t%s\n", assessment.Pitch)
	}
	w.Flush()
}
