package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Roster is the in-memory record store. Callers pass it around explicitly;
// matching and tag helpers only ever see copies of its records.
type Roster struct {
	Items []Record
}

func New(records ...Record) *Roster {
	items := make([]Record, len(records))
	copy(items, records)
	return &Roster{Items: items}
}

func (r *Roster) Len() int {
	return len(r.Items)
}

// Records returns a copy of the stored records.
func (r *Roster) Records() []Record {
	out := make([]Record, len(r.Items))
	copy(out, r.Items)
	return out
}

// Add appends a record. Names must be non-empty and unique (case-insensitive).
func (r *Roster) Add(rec Record) error {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if r.FindByName(name) != nil {
		return fmt.Errorf("record %q already exists", name)
	}
	status, err := ParseStatus(string(rec.Status))
	if err != nil {
		return err
	}
	if rec.MonthlyViews < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeViews, rec.MonthlyViews)
	}

	rec.Name = name
	rec.Status = status
	r.Items = append(r.Items, rec)
	return nil
}

func (r *Roster) FindByName(name string) *Record {
	name = strings.TrimSpace(name)
	for i := range r.Items {
		if strings.EqualFold(r.Items[i].Name, name) {
			return &r.Items[i]
		}
	}
	return nil
}

func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.Items))
	for _, rec := range r.Items {
		names = append(names, rec.Name)
	}
	return names
}

// Keep retains only the records for which keep returns true and reports the dropped names.
func (r *Roster) Keep(keep func(*Record) bool) []string {
	var dropped []string
	kept := r.Items[:0]
	for i := range r.Items {
		if keep(&r.Items[i]) {
			kept = append(kept, r.Items[i])
			continue
		}
		dropped = append(dropped, r.Items[i].Name)
	}
	r.Items = kept
	return dropped
}

// ReportByStatus groups records by status for display.
func (r *Roster) ReportByStatus() map[Status][]map[string]string {
	report := make(map[Status][]map[string]string)
	for _, rec := range r.Items {
		report[rec.Status] = append(report[rec.Status], map[string]string{
			"name":          rec.Name,
			"platform":      rec.Platform,
			"location":      rec.Location,
			"channel url":   rec.ChannelURL,
			"monthly views": fmt.Sprintf("%d", rec.MonthlyViews),
			"verticals":     rec.Verticals,
		})
	}
	return report
}

func (r *Roster) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "roster_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}
