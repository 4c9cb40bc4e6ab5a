package session

import (
	"context"
	"fmt"

	"github.com/prosepane/prosepane/internal/doc"
	"github.com/prosepane/prosepane/internal/splitter"
	"github.com/prosepane/prosepane/internal/srcmap"
	"github.com/prosepane/prosepane/internal/typeset"
	"github.com/prosepane/prosepane/internal/visualline"
)

// Build is one immutable document build: the frame tree, tiles, and
// visual-line list, plus everything the source-map resolver needed to
// produce them. It is shared read-only between the main loop and the
// prefetch worker for the lifetime of the scoped region that owns it.
type Build struct {
	Markdown string
	Markup   string
	Frame    *doc.Frame
	Tiles    []*doc.Tile
	Lines    []*doc.VisualLine
}

// DocBuilder drives steps 2-4 of the outer loop's lifecycle against the
// external Translator/Compiler contracts.
type DocBuilder struct {
	Translator typeset.Translator
	Compiler   typeset.Compiler

	ThemePrelude      string
	WidthOverrideLine string

	PPI             float64
	TileMinHeightPt float64
}

// Build runs translate -> compile -> split -> extract -> resolve.
func (b DocBuilder) Build(ctx context.Context, markdown string, viewportHeightPt float64) (*Build, error) {
	markup, sourceMap, err := b.Translator.Translate(ctx, markdown)
	if err != nil {
		return nil, fmt.Errorf("session: translate: %w", err)
	}

	mainSource := typeset.BuildMainSource(b.ThemePrelude, b.WidthOverrideLine, markup)
	prefixLen := typeset.PrefixLen(b.ThemePrelude, b.WidthOverrideLine)

	frame, err := b.Compiler.Compile(ctx, mainSource)
	if err != nil {
		return nil, fmt.Errorf("session: compile: %w", err)
	}

	tiles := splitter.Split(frame, b.TileMinHeightPt, viewportHeightPt)
	pxPerPt := b.PPI / 72.0
	lines := visualline.Extract(frame, pxPerPt)

	resolver := srcmap.New(sourceMap, markup, markdown, prefixLen)
	for _, vl := range lines {
		span, ok := visualline.LeadingSpan(vl)
		if !ok {
			continue
		}
		resolver.Resolve(vl, span)
	}

	return &Build{Markdown: markdown, Markup: markup, Frame: frame, Tiles: tiles, Lines: lines}, nil
}
