package filtering

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/creator-roster/internal/roster"
)

// DefaultStatuses hides archived records unless asked otherwise.
var DefaultStatuses = []string{string(roster.StatusCreator), string(roster.StatusProspect)}

type statusFilter struct {
	names    []string
	statuses []roster.Status
	disabled bool
	reason   string
}

// NewStatus creates a filter that keeps records with one of the given statuses.
// An empty list falls back to DefaultStatuses.
func NewStatus(names []string) Filter {
	if len(names) == 0 {
		names = DefaultStatuses
	}
	return &statusFilter{names: names}
}

func (f *statusFilter) Name() string { return "status" }

func (f *statusFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *statusFilter) IsEnabled() bool { return !f.disabled }

func (f *statusFilter) Validate() error {
	f.statuses = f.statuses[:0]
	for _, name := range f.names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("empty status name")
		}
		status, err := roster.ParseStatus(name)
		if err != nil {
			return err
		}
		if !slices.Contains(f.statuses, status) {
			f.statuses = append(f.statuses, status)
		}
	}
	return nil
}

func (f *statusFilter) Apply(_ context.Context, r *roster.Roster) (*roster.Roster, Step, error) {
	initial := r.Len()
	dropped := r.Keep(func(rec *roster.Record) bool {
		return slices.Contains(f.statuses, rec.Status)
	})
	return r, Step{Initial: initial, Dropped: dropped, Left: r.Len()}, nil
}

func (f *statusFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"statuses": strings.Join(f.names, ",")},
	}
}
