package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spigell/creator-roster/internal/roster"
)

const handEditedRoster = "Name,Status,Verticals,Notes\n" +
	"Bo,Prospect,\"cooking\ncooking,,food\",  indented\n" +
	"Cy,Archived,gaming,\n"

// execute runs the root command with args and returns what it printed.
// Flags are reset afterwards since cobra keeps their values between runs.
func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	resetFlags(rootCmd)
	return out.String()
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if slice, ok := f.Value.(pflag.SliceValue); ok {
			_ = slice.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return path
}

func TestAddThenMatchAndFilter(t *testing.T) {
	path := writeRoster(t, handEditedRoster)

	execute(t, "add", "--roster", path,
		"--name", "Ana",
		"--verticals", "gaming\ngaming, tech",
		"--preferred-categories", "energy drinks",
		"--monthly-views", "1200",
		"--notes", "streams tech reviews",
	)

	saved, err := roster.LoadFile(path)
	if err != nil {
		t.Fatalf("load saved roster: %v", err)
	}
	if got := strings.Join(saved.Names(), ","); got != "Bo,Cy,Ana" {
		t.Fatalf("unexpected roster order: %s", got)
	}
	ana := saved.FindByName("ana")
	if ana.Verticals != "gaming, tech" || ana.Status != roster.StatusCreator || ana.MonthlyViews != 1200 {
		t.Fatalf("unexpected added record: %+v", ana)
	}
	bo := saved.FindByName("Bo")
	if bo.Verticals != "cooking, food" {
		t.Fatalf("expected hand-edited tags to be saved canonical, got %q", bo.Verticals)
	}
	if bo.Notes != "  indented" {
		t.Fatalf("expected notes whitespace to survive, got %q", bo.Notes)
	}

	out := execute(t, "match", "--roster", path, "gaming", "creator", "for", "energy", "drinks")
	if !strings.Contains(out, "Ana") {
		t.Fatalf("expected Ana among matches:\n%s", out)
	}
	if strings.Contains(out, "Cy") {
		t.Fatalf("archived record must not be matched by default:\n%s", out)
	}

	out = execute(t, "filter", "--roster", path, "--names", "--all", "--vertical", "gaming")
	if out != "Cy\nAna\n" {
		t.Fatalf("unexpected filter output: %q", out)
	}

	out = execute(t, "filter", "--roster", path, "--names", "--vertical", "gaming")
	if out != "Ana\n" {
		t.Fatalf("expected archived record to be hidden: %q", out)
	}
}

func TestExportNormalizesHandEditedTags(t *testing.T) {
	path := writeRoster(t, handEditedRoster)

	out := execute(t, "export", "--roster", path)

	loaded, err := roster.ReadCSV(strings.NewReader(out))
	if err != nil {
		t.Fatalf("read exported csv: %v", err)
	}
	if got := loaded.FindByName("Bo").Verticals; got != "cooking, food" {
		t.Fatalf("expected canonical tags in export, got %q", got)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read roster: %v", err)
	}
	if string(raw) != handEditedRoster {
		t.Fatalf("export must not rewrite the roster file")
	}
}

func TestNormalizeRewritesRosterFile(t *testing.T) {
	path := writeRoster(t, handEditedRoster)

	execute(t, "normalize", "--roster", path)

	saved, err := roster.LoadFile(path)
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if got := saved.FindByName("Bo").Verticals; got != "cooking, food" {
		t.Fatalf("expected normalized tags on disk, got %q", got)
	}
}
