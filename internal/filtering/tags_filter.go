package filtering

import (
	"context"
	"strings"

	"github.com/spigell/creator-roster/internal/matching"
	"github.com/spigell/creator-roster/internal/roster"
)

type tagsFilter struct {
	selections matching.Selections
	disabled   bool
	reason     string
}

// NewTags creates a filter that keeps records carrying every selected tag per field.
func NewTags(selections matching.Selections) Filter {
	return &tagsFilter{selections: selections}
}

func (f *tagsFilter) Name() string { return "tags" }

func (f *tagsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *tagsFilter) IsEnabled() bool { return !f.disabled }

func (f *tagsFilter) Validate() error {
	return f.selections.Validate()
}

func (f *tagsFilter) Apply(_ context.Context, r *roster.Roster) (*roster.Roster, Step, error) {
	initial := r.Len()
	if f.selections.Empty() {
		return r, Step{Initial: initial, Left: initial}, nil
	}

	kept, err := matching.FilterRecords(r.Items, f.selections)
	if err != nil {
		return r, Step{}, err
	}

	// kept is an ordered subsequence of r.Items
	var dropped []string
	j := 0
	for _, rec := range r.Items {
		if j < len(kept) && kept[j] == rec {
			j++
			continue
		}
		dropped = append(dropped, rec.Name)
	}

	next := roster.New(kept...)
	return next, Step{Initial: initial, Dropped: dropped, Left: next.Len()}, nil
}

func (f *tagsFilter) Status() Status {
	details := map[string]string{}
	for field, selected := range f.selections {
		if len(selected) > 0 {
			details[field] = strings.Join(selected, ",")
		}
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
