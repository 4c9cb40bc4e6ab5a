package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prosepane/prosepane/internal/session"
	"github.com/prosepane/prosepane/internal/tilecache"
	"github.com/prosepane/prosepane/internal/typeset/typesettest"
)

func runRender(args []string) int {
	fs := flag.NewFlagSet("prosepane render", flag.ContinueOnError)
	out := fs.String("o", "", "output path, e.g. out.png (writes out-000.png, out-001.png, ...)")
	width := fs.Float64("width", 0, "page width in pt (overrides config)")
	ppi := fs.Float64("ppi", 0, "pixels per inch (overrides config)")
	tileHeight := fs.Float64("tile-height", 0, "tile height in pt (overrides config)")
	theme := fs.String("theme", "", "theme name override")
	dump := fs.Bool("dump", false, "also write out-lines.json with the resolved visual-line/source-map data")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	file := fs.Arg(0)
	if file == "" {
		fmt.Fprintln(os.Stderr, "prosepane render: a file argument is required")
		return exitUsage
	}
	if *out == "" {
		fmt.Fprintln(os.Stderr, "prosepane render: -o is required")
		return exitUsage
	}

	cfg, err := loadConfig(*theme, *theme != "", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prosepane: %v\n", err)
		return exitFailure
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *ppi > 0 {
		cfg.PPI = *ppi
	}
	if *tileHeight > 0 {
		cfg.Viewer.TileHeight = *tileHeight
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "prosepane: invalid settings: %v\n", err)
		return exitUsage
	}

	markdownBytes, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prosepane: %v\n", err)
		return exitFailure
	}

	builder := session.DocBuilder{
		Translator:        typesettest.Translator{},
		Compiler:          typesettest.Compiler{},
		ThemePrelude:      themePrelude(cfg.Theme),
		WidthOverrideLine: fmt.Sprintf("#set page(width: %gpt)\n", cfg.Width),
		PPI:               cfg.PPI,
		TileMinHeightPt:   cfg.Viewer.TileHeight,
	}
	// A render run has no terminal viewport; the configured tile height
	// stands in for the viewport height, so the splitter's effective
	// minimum is just the tile height.
	build, err := builder.Build(context.Background(), string(markdownBytes), cfg.Viewer.TileHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prosepane: %v\n", err)
		return exitFailure
	}

	renderer := tilecache.ContractRenderer{
		Renderer:      typesettest.PixelRenderer{},
		Encoder:       typesettest.PNGEncoder{},
		SidebarFont:   "mono",
		SidebarSizePt: 10,
		SidebarWidth:  float64(cfg.Viewer.SidebarCols) * 6,
	}
	for _, tile := range build.Tiles {
		png, err := renderer.RenderTile(context.Background(), tile, cfg.PPI)
		if err != nil {
			fmt.Fprintf(os.Stderr, "prosepane: render tile %d: %v\n", tile.Index, err)
			return exitFailure
		}
		path := numberedOutputPath(*out, tile.Index)
		if err := os.WriteFile(path, png, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "prosepane: write %s: %v\n", path, err)
			return exitFailure
		}
	}

	if *dump {
		if err := writeDump(*out, build); err != nil {
			fmt.Fprintf(os.Stderr, "prosepane: dump: %v\n", err)
			return exitFailure
		}
	}

	return exitOK
}

// numberedOutputPath turns "out.png" into "out-000.png", "out-001.png", ...
func numberedOutputPath(base string, index int) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s-%03d%s", stem, index, ext)
}

type dumpLine struct {
	YPt            float64 `json:"y_pt"`
	YPx            float64 `json:"y_px"`
	HasMDLineExact bool    `json:"has_md_line_exact"`
	MDLineExact    int     `json:"md_line_exact,omitempty"`
	HasMDLineRange bool    `json:"has_md_line_range"`
	MDLineStart    int     `json:"md_line_start,omitempty"`
	MDLineEnd      int     `json:"md_line_end,omitempty"`
}

func writeDump(base string, build *session.Build) error {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	path := stem + "-lines.json"

	lines := make([]dumpLine, 0, len(build.Lines))
	for _, vl := range build.Lines {
		lines = append(lines, dumpLine{
			YPt:            vl.YPt,
			YPx:            vl.YPx,
			HasMDLineExact: vl.HasMDLineExact,
			MDLineExact:    vl.MDLineExact,
			HasMDLineRange: vl.HasMDLineRange,
			MDLineStart:    vl.MDLineRange.Start,
			MDLineEnd:      vl.MDLineRange.End,
		})
	}

	b, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
