// Package config loads and validates the TOML configuration file and
// merges command-line overrides on top, following the layered
// file-then-flags pattern the rest of the corpus uses for its own
// settings (fbc's config package, generalized here from YAML+validator
// tags to BurntSushi/toml).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

// Viewer holds the `[viewer]` table.
type Viewer struct {
	ScrollStep      int     `toml:"scroll_step"`
	FrameBudgetMs   int     `toml:"frame_budget_ms"`
	TileHeight      float64 `toml:"tile_height"`
	SidebarCols     int     `toml:"sidebar_cols"`
	EvictDistance   int     `toml:"evict_distance"`
	WatchIntervalMs int     `toml:"watch_interval_ms"`
}

// Config is the full configuration surface.
type Config struct {
	Theme  string  `toml:"theme"`
	Width  float64 `toml:"width"`
	PPI    float64 `toml:"ppi"`
	Viewer Viewer  `toml:"viewer"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		Theme: "catppuccin",
		Width: 660.0,
		PPI:   144.0,
		Viewer: Viewer{
			ScrollStep:      3,
			FrameBudgetMs:   32,
			TileHeight:      500.0,
			SidebarCols:     6,
			EvictDistance:   4,
			WatchIntervalMs: 200,
		},
	}
}

// Path resolves the config file location: $XDG_CONFIG_HOME/prosepane/config.toml,
// falling back to ~/.config/prosepane/config.toml.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "prosepane", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "prosepane", "config.toml"), nil
}

// Load reads path on top of Default(); a missing file is not an error —
// every field is optional.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate aggregates every violation via multierr instead of failing on
// the first, so a user fixing a config sees every problem in one run.
func (c Config) Validate() error {
	var err error
	if c.PPI <= 0 {
		err = multierr.Append(err, fmt.Errorf("ppi must be positive, got %g", c.PPI))
	}
	if c.Width <= 0 {
		err = multierr.Append(err, fmt.Errorf("width must be positive, got %g", c.Width))
	}
	if c.Viewer.SidebarCols < 0 {
		err = multierr.Append(err, fmt.Errorf("viewer.sidebar_cols must be non-negative, got %d", c.Viewer.SidebarCols))
	}
	if c.Viewer.EvictDistance < 0 {
		err = multierr.Append(err, fmt.Errorf("viewer.evict_distance must be non-negative, got %d", c.Viewer.EvictDistance))
	}
	if c.Viewer.TileHeight <= 0 {
		err = multierr.Append(err, fmt.Errorf("viewer.tile_height must be positive, got %g", c.Viewer.TileHeight))
	}
	if c.Viewer.FrameBudgetMs <= 0 {
		err = multierr.Append(err, fmt.Errorf("viewer.frame_budget_ms must be positive, got %d", c.Viewer.FrameBudgetMs))
	}
	return err
}

// Overrides carries the subset of fields the CLI may set; a nil pointer
// field means "not overridden". Overrides are applied once, when the CLI
// loads the config at startup. The viewer's reload path re-reads the
// Markdown source only; it does not re-read the config file, so the
// merged config stays as it was at startup.
type Overrides struct {
	Theme       *string
	Width       *float64
	PPI         *float64
	TileHeight  *float64
	SidebarCols *int
	NoWatch     bool
}

// Apply merges o onto c, returning the merged config. o.NoWatch has no
// Config field; callers read it directly from Overrides.
func (c Config) Apply(o Overrides) Config {
	if o.Theme != nil {
		c.Theme = *o.Theme
	}
	if o.Width != nil {
		c.Width = *o.Width
	}
	if o.PPI != nil {
		c.PPI = *o.PPI
	}
	if o.TileHeight != nil {
		c.Viewer.TileHeight = *o.TileHeight
	}
	if o.SidebarCols != nil {
		c.Viewer.SidebarCols = *o.SidebarCols
	}
	return c
}
