package roster

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromMapDefaults(t *testing.T) {
	rec, err := FromMap(map[string]any{
		"Name":          "  Ana  ",
		"Monthly Views": "12000",
		"Verticals":     "gaming, tech",
		"Unrelated":     "ignored",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Name != "Ana" {
		t.Fatalf("expected trimmed name, got %q", rec.Name)
	}
	if rec.Status != StatusCreator {
		t.Fatalf("expected default status Creator, got %q", rec.Status)
	}
	if rec.MonthlyViews != 12000 {
		t.Fatalf("expected 12000 views, got %d", rec.MonthlyViews)
	}
	if rec.Notes != "" || rec.Email != "" {
		t.Fatalf("expected missing fields to stay empty: %+v", rec)
	}
}

func TestFromMapEmptyViews(t *testing.T) {
	rec, err := FromMap(map[string]any{"Name": "Bo", "Monthly Views": ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.MonthlyViews != 0 {
		t.Fatalf("expected zero views, got %d", rec.MonthlyViews)
	}
}

func TestFromMapTrimsOnlyKeyColumns(t *testing.T) {
	rec, err := FromMap(map[string]any{
		"Name":          " Ana ",
		"Status":        " prospect ",
		"Monthly Views": " 42 ",
		"Verticals":     "  gaming  ",
		"Notes":         "  indented\n",
		"Location":      " Lisbon ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Name != "Ana" || rec.Status != StatusProspect || rec.MonthlyViews != 42 || rec.Verticals != "gaming" {
		t.Fatalf("expected key columns trimmed: %+v", rec)
	}
	if rec.Notes != "  indented\n" || rec.Location != " Lisbon " {
		t.Fatalf("expected free text kept as is: notes=%q location=%q", rec.Notes, rec.Location)
	}
}

func TestCSVRoundTripKeepsNotesWhitespace(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, New(Record{Name: "Ana", Status: StatusCreator, Notes: "  indented"})); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := loaded.Items[0].Notes; got != "  indented" {
		t.Fatalf("expected notes to survive a round trip, got %q", got)
	}
}

func TestFromMapRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		row    map[string]any
		expect error
	}{
		{
			name:   "unknown status",
			row:    map[string]any{"Name": "A", "Status": "Retired"},
			expect: ErrInvalidStatus,
		},
		{
			name:   "negative views",
			row:    map[string]any{"Name": "A", "Monthly Views": -5},
			expect: ErrNegativeViews,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := FromMap(tt.row); !errors.Is(err, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, err)
			}
		})
	}
}

func TestParseStatusIsCaseInsensitive(t *testing.T) {
	status, err := ParseStatus(" prospect ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusProspect {
		t.Fatalf("expected Prospect, got %q", status)
	}
}

func TestRecordField(t *testing.T) {
	rec := Record{Name: "A", MonthlyViews: 42, AvoidedBrandCategories: "gambling"}

	if v, ok := rec.Field(FieldMonthlyViews); !ok || v != "42" {
		t.Fatalf("unexpected views lookup: %q %v", v, ok)
	}
	if v, ok := rec.Field(FieldAvoidedBrandCategories); !ok || v != "gambling" {
		t.Fatalf("unexpected avoided categories lookup: %q %v", v, ok)
	}
	if _, ok := rec.Field("Favourite Colour"); ok {
		t.Fatalf("expected unknown field to be reported")
	}
	if rec.SetTagField(FieldNotes, "x") {
		t.Fatalf("notes is not a tag field")
	}
}

func TestRosterAdd(t *testing.T) {
	r := New()
	if err := r.Add(Record{Name: "Ana", Status: "prospect"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Add(Record{Name: "ana"}); err == nil {
		t.Fatalf("expected duplicate name to be rejected")
	}
	if err := r.Add(Record{Name: "   "}); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", r.Len())
	}
	if got := r.FindByName("ANA"); got == nil || got.Status != StatusProspect {
		t.Fatalf("unexpected lookup result: %+v", got)
	}
}

func TestRosterKeep(t *testing.T) {
	r := New(Record{Name: "A"}, Record{Name: "B", Status: StatusArchived}, Record{Name: "C"})

	dropped := r.Keep(func(rec *Record) bool { return rec.Status != StatusArchived })

	if len(dropped) != 1 || dropped[0] != "B" {
		t.Fatalf("unexpected dropped names: %v", dropped)
	}
	if names := strings.Join(r.Names(), ","); names != "A,C" {
		t.Fatalf("expected order to be preserved, got %s", names)
	}
}

func TestReportByStatus(t *testing.T) {
	r := New(
		Record{Name: "A", Status: StatusCreator, MonthlyViews: 10},
		Record{Name: "B", Status: StatusProspect},
		Record{Name: "C", Status: StatusCreator},
	)

	report := r.ReportByStatus()
	if len(report[StatusCreator]) != 2 {
		t.Fatalf("expected 2 creators, got %d", len(report[StatusCreator]))
	}
	if report[StatusCreator][0]["monthly views"] != "10" {
		t.Fatalf("unexpected views: %q", report[StatusCreator][0]["monthly views"])
	}
	if _, ok := report[StatusArchived]; ok {
		t.Fatalf("did not expect archived entries")
	}
}

func TestCSVRoundTripKeepsOrderAndValues(t *testing.T) {
	original := New(
		Record{Name: "A", Status: StatusCreator, MonthlyViews: 1500, Verticals: "gaming, tech", Notes: "likes, commas\nand lines"},
		Record{Name: "B", Status: StatusArchived, PreferredBrandCategories: "food"},
	)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, original); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", loaded.Len())
	}
	if loaded.Items[0] != original.Items[0] || loaded.Items[1] != original.Items[1] {
		t.Fatalf("records differ after round trip: %+v", loaded.Items)
	}
}

func TestReadCSVToleratesMissingColumns(t *testing.T) {
	input := "Name,Status,Email,Location,Platform,Verticals,Audience Demographics,Preferred Brands,Avoided Brands,Notes\n" +
		"Ana,Prospect,ana@example.com,Lisbon,YouTube,cooking,,Acme,,\n" +
		",,,,,,,,,\n"

	loaded, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("expected blank rows to be skipped, got %d records", loaded.Len())
	}
	rec := loaded.Items[0]
	if rec.Status != StatusProspect || rec.PreferredBrands != "Acme" || rec.ChannelURL != "" || rec.MonthlyViews != 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestReadCSVReportsLine(t *testing.T) {
	input := "Name,Status\nAna,Creator\nBo,Unknown\n"
	_, err := ReadCSV(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected line number in error, got %v", err)
	}
}

func TestLoadAndSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")

	empty, err := LoadFile(path)
	if err != nil {
		t.Fatalf("missing file should load as empty roster: %v", err)
	}
	if empty.Len() != 0 {
		t.Fatalf("expected empty roster")
	}

	if err := empty.Add(Record{Name: "Ana", Verticals: "travel"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := SaveFile(path, empty); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 1 || loaded.Items[0].Verticals != "travel" {
		t.Fatalf("unexpected loaded roster: %+v", loaded.Items)
	}
}

func TestDumpToTmpFile(t *testing.T) {
	r := New(Record{Name: "Ana"})
	name, err := r.DumpToTmpFile()
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	t.Cleanup(func() { os.Remove(name) })

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if !strings.Contains(string(data), `"name": "Ana"`) {
		t.Fatalf("unexpected dump contents: %s", data)
	}
}
