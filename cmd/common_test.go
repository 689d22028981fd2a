package cmd

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/spigell/creator-roster/internal/ai"
	"github.com/spigell/creator-roster/internal/matching"
	"github.com/spigell/creator-roster/internal/roster"
)

func TestResolveTagField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect string
	}{
		{input: "Verticals", expect: roster.FieldVerticals},
		{input: "verticals", expect: roster.FieldVerticals},
		{input: "preferred-brand-categories", expect: roster.FieldPreferredBrandCategories},
		{input: " Avoided Brand Categories ", expect: roster.FieldAvoidedBrandCategories},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := resolveTagField(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}

	for _, input := range []string{"notes", "", "categories"} {
		if _, err := resolveTagField(input); !errors.Is(err, matching.ErrUnknownField) {
			t.Fatalf("expected ErrUnknownField for %q, got %v", input, err)
		}
	}
}

func TestSelectionsFlagsOverrideConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addFilterFlags(cmd)
	if err := cmd.ParseFlags([]string{"--vertical", "gaming", "--vertical", "tech"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	got := selections(cmd, &FilterConfig{
		Verticals:              []string{"cooking"},
		AvoidedBrandCategories: []string{"gambling"},
	})

	if !slices.Equal(got[roster.FieldVerticals], []string{"gaming", "tech"}) {
		t.Fatalf("expected flag verticals, got %q", got[roster.FieldVerticals])
	}
	if !slices.Equal(got[roster.FieldAvoidedBrandCategories], []string{"gambling"}) {
		t.Fatalf("expected configured avoided categories, got %q", got[roster.FieldAvoidedBrandCategories])
	}
	if len(got[roster.FieldPreferredBrandCategories]) != 0 {
		t.Fatalf("expected no preferred categories, got %q", got[roster.FieldPreferredBrandCategories])
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateViews(t *testing.T) {
	for _, ok := range []string{"", "0", " 1200 "} {
		if err := validateViews(ok); err != nil {
			t.Fatalf("expected %q to be valid, got %v", ok, err)
		}
	}
	if err := validateViews("-5"); !errors.Is(err, roster.ErrNegativeViews) {
		t.Fatalf("expected ErrNegativeViews, got %v", err)
	}
	if err := validateViews("lots"); err == nil {
		t.Fatalf("expected error for non-numeric views")
	}
	if err := validateName("  "); !errors.Is(err, errNameRequired) {
		t.Fatalf("expected errNameRequired, got %v", err)
	}
}

func TestPrintRecords(t *testing.T) {
	var buf bytes.Buffer
	records := []roster.Record{
		{Name: "A", Status: roster.StatusCreator, Platform: "YouTube", MonthlyViews: 1500, Verticals: "gaming, tech"},
	}
	if err := printRecords(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", buf.String())
	}
	for _, want := range []string{"A", "Creator", "YouTube", "1500", "[gaming] [tech]"} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("expected %q in row %q", want, lines[1])
		}
	}
}

func TestPrintMatchesWithAssessments(t *testing.T) {
	var buf bytes.Buffer
	results := []matching.Result{
		{Record: roster.Record{Name: "A", Verticals: "gaming"}, Score: 2},
		{Record: roster.Record{Name: "B", Verticals: "tech"}, Score: 1},
	}
	assessments := map[string]*ai.FitAssessment{
		"A": {Fit: true, Score: 0.9, Pitch: "loves energy drinks"},
	}

	if err := printMatches(&buf, results, assessments); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"0.90", "loves energy drinks", "[gaming]", "[tech]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
}
