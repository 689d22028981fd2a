package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/creator-roster/internal/ai"
	"github.com/spigell/creator-roster/internal/logger"
	"github.com/spigell/creator-roster/internal/roster"
	"github.com/spigell/creator-roster/internal/utils"
)

const (
	systemInstruction   = "You match content creators with brand deals for a talent agency. Answer with a single JSON object and nothing else."
	defaultMaxLogLength = 200
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
	Model() string
}

// Matcher asks Gemini whether a roster record fits a brand deal.
type Matcher struct {
	generator contentGenerator
	minScore  float64
	maxLogLen int
	logger    *zap.Logger
}

func NewMatcher(generator contentGenerator, minScore float64, maxLogLength int, log *zap.Logger) *Matcher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if minScore < 0 {
		minScore = 0
	}

	return &Matcher{
		generator: generator,
		minScore:  minScore,
		maxLogLen: maxLogLength,
		logger:    logger.WithFields(log, logger.CommonFields("gemini", generator.Model())...),
	}
}

func (m *Matcher) Evaluate(ctx context.Context, deal string, record *roster.Record) (*ai.FitAssessment, error) {
	deal = strings.TrimSpace(deal)
	if deal == "" {
		return nil, errors.New("brand deal description is required")
	}
	if record == nil {
		return nil, errors.New("record is required")
	}

	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	prompt := buildPrompt(deal, string(recordJSON))
	log := m.logger.With(logger.RecordFields(record)...)

	log.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, m.maxLogLen)),
	)

	raw, err := m.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, m.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	if m.minScore > 0 && assessment.Score < m.minScore {
		if assessment.Fit {
			log.Debug("set fit to false by score threshold",
				zap.Float64("score", assessment.Score),
				zap.Float64("threshold", m.minScore),
			)
		}
		assessment.Fit = false
	}

	assessment.Raw = raw
	return assessment, nil
}

func buildPrompt(deal, recordJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Brand deal:\n{{DEAL}}\n\nCreator:\n{{RECORD_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{DEAL}}", deal)
	return strings.ReplaceAll(prompt, "{{RECORD_JSON}}", recordJSON)
}

func parseResponse(raw string) (*ai.FitAssessment, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		score = 0
	}

	return &ai.FitAssessment{
		Fit:    coerceBool(data["fit"]),
		Score:  score,
		Reason: coerceString(data["reason"]),
		Pitch:  coerceString(data["pitch"]),
	}, nil
}

// extractJSON strips Markdown code fences some models wrap JSON in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
