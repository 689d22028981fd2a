// Package matching ranks roster records against a free-text brand-deal
// description and filters records by selected tags.
//
// Everything here is a pure function of its arguments: records are read,
// never modified, and no state is kept between calls.
package matching

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/spigell/creator-roster/internal/roster"
	"github.com/spigell/creator-roster/internal/tags"
)

// DefaultTopN is the number of matches returned when the caller has no preference.
const DefaultTopN = 5

var ErrUnknownField = errors.New("unknown tag field")

// searchFields are concatenated, in this order, to form a record's searchable text.
var searchFields = []string{
	roster.FieldVerticals,
	roster.FieldAudienceDemographics,
	roster.FieldPreferredBrands,
	roster.FieldAvoidedBrands,
	roster.FieldPreferredBrandCategories,
	roster.FieldAvoidedBrandCategories,
	roster.FieldNotes,
}

type Result struct {
	Record roster.Record
	Score  int
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// Tokenize returns the set of maximal letter/number/underscore runs in text, lower-cased.
func Tokenize(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) }) {
		set[strings.ToLower(word)] = struct{}{}
	}
	return set
}

// SearchText joins the record fields that take part in keyword scoring.
func SearchText(rec *roster.Record) string {
	parts := make([]string, 0, len(searchFields))
	for _, field := range searchFields {
		value, _ := rec.Field(field)
		parts = append(parts, value)
	}
	return strings.Join(parts, " ")
}

// Score counts the distinct tokens shared by description and the record's searchable text.
func Score(description string, rec *roster.Record) int {
	return overlap(Tokenize(description), rec)
}

func overlap(query map[string]struct{}, rec *roster.Record) int {
	if len(query) == 0 {
		return 0
	}
	score := 0
	for token := range Tokenize(SearchText(rec)) {
		if _, ok := query[token]; ok {
			score++
		}
	}
	return score
}

// Match returns up to topN records with a positive score, best first.
// Records with equal scores keep their input order. An empty description
// means there is no query and yields no results.
func Match(description string, records []roster.Record, topN int) []Result {
	if strings.TrimSpace(description) == "" || topN <= 0 {
		return []Result{}
	}

	query := Tokenize(description)
	results := make([]Result, 0, len(records))
	for i := range records {
		score := overlap(query, &records[i])
		if score == 0 {
			continue
		}
		results = append(results, Result{Record: records[i], Score: score})
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(results) > topN {
		results = results[:topN]
	}
	return results
}

// IsTagField reports whether field can be used for tag filtering.
func IsTagField(field string) bool {
	return slices.Contains(roster.TagFields, field)
}

// RecordMatches reports whether every selected tag is present in the record's
// field. An empty selection always matches.
func RecordMatches(rec *roster.Record, field string, selected []string) (bool, error) {
	if !IsTagField(field) {
		return false, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if len(selected) == 0 {
		return true, nil
	}

	value, _ := rec.Field(field)
	present := tags.Split(value)
	for _, want := range selected {
		if !slices.Contains(present, want) {
			return false, nil
		}
	}
	return true, nil
}

// Selections maps a tag field to the tags a record must carry in that field.
type Selections map[string][]string

// Validate returns ErrUnknownField for the first field that cannot be filtered on.
func (s Selections) Validate() error {
	fields := make([]string, 0, len(s))
	for field := range s {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	for _, field := range fields {
		if !IsTagField(field) {
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	return nil
}

// Empty reports whether no field has any selected tag.
func (s Selections) Empty() bool {
	for _, selected := range s {
		if len(selected) > 0 {
			return false
		}
	}
	return true
}

// FilterRecords keeps the records that match every field selection, in input order.
func FilterRecords(records []roster.Record, selections Selections) ([]roster.Record, error) {
	if err := selections.Validate(); err != nil {
		return nil, err
	}

	out := make([]roster.Record, 0, len(records))
	for i := range records {
		ok, err := matchesAll(&records[i], selections)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, records[i])
		}
	}
	return out, nil
}

func matchesAll(rec *roster.Record, selections Selections) (bool, error) {
	for field, selected := range selections {
		ok, err := RecordMatches(rec, field, selected)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
