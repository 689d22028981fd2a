// Package tags converts free-text tag input into the canonical form stored on
// roster records and renders it back for display.
package tags

import (
	"slices"
	"strings"

	"github.com/spigell/creator-roster/internal/roster"
)

const separator = ", "

func isSeparator(r rune) bool {
	return r == ',' || r == '\n'
}

// Split breaks text on any run of commas and newlines, trims every piece and
// drops the empty ones. Order is kept and duplicates are not removed.
func Split(text string) []string {
	out := []string{}
	for _, piece := range strings.FieldsFunc(text, isSeparator) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		out = append(out, piece)
	}
	return out
}

// Normalize returns the canonical storage string: distinct tokens in order of
// first appearance joined with ", ". Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, tag := range Split(text) {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return strings.Join(out, separator)
}

// Display renders tags as "[a] [b]" for read-only views.
func Display(text string) string {
	parts := Split(text)
	for i, tag := range parts {
		parts[i] = "[" + tag + "]"
	}
	return strings.Join(parts, " ")
}

// Options collects every distinct tag used in field across records, sorted.
// Unknown fields contribute nothing.
func Options(records []roster.Record, field string) []string {
	set := make(map[string]struct{})
	for i := range records {
		value, _ := records[i].Field(field)
		for _, tag := range Split(value) {
			set[tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}

// NormalizeRecord rewrites every tag field of rec in canonical form and
// reports whether anything changed.
func NormalizeRecord(rec *roster.Record) bool {
	changed := false
	for _, field := range roster.TagFields {
		value, _ := rec.Field(field)
		if norm := Normalize(value); norm != value {
			rec.SetTagField(field, norm)
			changed = true
		}
	}
	return changed
}
