package filtering

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/creator-roster/internal/ai"
	"github.com/spigell/creator-roster/internal/logger"
	"github.com/spigell/creator-roster/internal/roster"
)

type AIFitFilterConfig struct {
	Enabled         bool
	Provider        string
	Model           string
	MinimumFitScore float64
	// Deal is the brand-deal description every record is evaluated against.
	Deal string
}

type aiFitFilter struct {
	enabled     bool
	reason      string
	config      *AIFitFilterConfig
	matcher     ai.Matcher
	logger      *zap.Logger
	assessments map[string]*ai.FitAssessment
}

// NewAIFit creates the AI-based filtering step.
func NewAIFit(cfg *AIFitFilterConfig, matcher ai.Matcher, log *zap.Logger) Filter {
	if cfg == nil {
		cfg = &AIFitFilterConfig{}
	}
	return &aiFitFilter{
		enabled: cfg.Enabled,
		config:  cfg,
		matcher: matcher,
		logger:  logger.WithFields(log, logger.CommonFields(cfg.Provider, cfg.Model)...),
	}
}

func (f *aiFitFilter) Name() string { return "ai_fit" }

func (f *aiFitFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *aiFitFilter) IsEnabled() bool { return f.enabled }

func (f *aiFitFilter) Validate() error {
	if f.matcher == nil {
		return errors.New("ai matcher is not configured")
	}
	if strings.TrimSpace(f.config.Deal) == "" {
		return errors.New("brand deal description is required for ai evaluation")
	}
	return nil
}

func (f *aiFitFilter) Apply(ctx context.Context, r *roster.Roster) (*roster.Roster, Step, error) {
	initial := r.Len()
	f.assessments = make(map[string]*ai.FitAssessment)

	approved := make([]roster.Record, 0, initial)
	var dropped []string

	for i := range r.Items {
		rec := &r.Items[i]
		log := f.logger.With(logger.RecordFields(rec)...)

		assessment, err := f.matcher.Evaluate(ctx, f.config.Deal, rec)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return r, Step{}, fmt.Errorf("ai evaluation interrupted: %w", ctxErr)
			}
			log.Warn("AI evaluation failed, keeping record", zap.Error(err))
			approved = append(approved, *rec)
			continue
		}

		if !assessment.Fit {
			log.Info("record rejected by AI provider",
				zap.Float64("ai_score", assessment.Score),
				zap.String("reason", assessment.Reason),
			)
			dropped = append(dropped, rec.Name)
			continue
		}

		log.Info("record approved by AI", zap.Float64("ai_score", assessment.Score))
		approved = append(approved, *rec)
		f.assessments[rec.Name] = assessment
	}

	next := roster.New(approved...)
	return next, Step{Initial: initial, Dropped: dropped, Left: next.Len()}, nil
}

// Assessments returns the approving assessments of the last run keyed by record name.
func (f *aiFitFilter) Assessments() map[string]*ai.FitAssessment {
	out := make(map[string]*ai.FitAssessment, len(f.assessments))
	maps.Copy(out, f.assessments)
	return out
}

func (f *aiFitFilter) Status() Status {
	details := map[string]string{
		"minimum_fit_score": fmt.Sprintf("%.2f", f.config.MinimumFitScore),
	}
	if f.config.Model != "" {
		details["model"] = f.config.Model
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

// Assessments merges the AI assessments collected by the chain, if any step gathered them.
func (f *Filtering) Assessments() map[string]*ai.FitAssessment {
	out := make(map[string]*ai.FitAssessment)
	for _, step := range f.steps {
		if collector, ok := step.(interface {
			Assessments() map[string]*ai.FitAssessment
		}); ok && step.IsEnabled() {
			maps.Copy(out, collector.Assessments())
		}
	}
	return out
}
