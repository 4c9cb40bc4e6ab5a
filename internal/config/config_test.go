package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_MatchesDocumentedValues(t *testing.T) {
	c := Default()
	if c.Theme != "catppuccin" || c.Width != 660.0 || c.PPI != 144.0 {
		t.Fatalf("unexpected top-level defaults: %+v", c)
	}
	if c.Viewer.ScrollStep != 3 || c.Viewer.TileHeight != 500.0 || c.Viewer.SidebarCols != 6 ||
		c.Viewer.EvictDistance != 4 || c.Viewer.FrameBudgetMs != 32 || c.Viewer.WatchIntervalMs != 200 {
		t.Fatalf("unexpected viewer defaults: %+v", c.Viewer)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Fatalf("expected defaults for a missing config file, got %+v", c)
	}
}

func TestLoad_PartialFileOverridesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("theme = \"nord\"\n\n[viewer]\nscroll_step = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Theme != "nord" {
		t.Fatalf("expected theme overridden to nord, got %q", c.Theme)
	}
	if c.Viewer.ScrollStep != 5 {
		t.Fatalf("expected scroll_step overridden to 5, got %d", c.Viewer.ScrollStep)
	}
	if c.PPI != 144.0 {
		t.Fatalf("expected ppi left at default, got %g", c.PPI)
	}
}

func TestValidate_AggregatesAllViolations(t *testing.T) {
	c := Default()
	c.PPI = -1
	c.Width = 0
	c.Viewer.SidebarCols = -1

	err := c.Validate()
	if err == nil {
		t.Fatal("expected an aggregated error")
	}
	msg := err.Error()
	for _, want := range []string{"ppi must be positive", "width must be positive", "sidebar_cols must be non-negative"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected error to mention %q, got: %s", want, msg)
		}
	}
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected defaults to validate cleanly, got %v", err)
	}
}

func TestApply_OverridesOnlySetFields(t *testing.T) {
	theme := "gruvbox"
	ppi := 96.0
	c := Default().Apply(Overrides{Theme: &theme, PPI: &ppi})
	if c.Theme != "gruvbox" || c.PPI != 96.0 {
		t.Fatalf("expected overrides applied, got %+v", c)
	}
	if c.Width != 660.0 {
		t.Fatalf("expected width untouched, got %g", c.Width)
	}
}
