package ai

import (
	"context"

	"github.com/spigell/creator-roster/internal/roster"
)

// FitAssessment is a provider's opinion on how well a record suits a brand deal.
type FitAssessment struct {
	Fit    bool
	Score  float64
	Reason string
	// Pitch is a short outreach line the provider suggests for the creator.
	Pitch string
	Raw   string
}

type Matcher interface {
	Evaluate(ctx context.Context, deal string, record *roster.Record) (*FitAssessment, error)
}
