// Package tilecache implements the tile cache and prefetch worker: a
// pure tile renderer, a main-thread-exclusive cache with LRU-by-distance
// eviction, and a single background worker that renders ahead of the
// reader with in-flight deduplication.
package tilecache

import (
	"context"

	"github.com/prosepane/prosepane/internal/doc"
)

// Renderer produces the two PNGs for a tile. Implementations must be pure
// functions of (tile, ppi) and safe to call from any goroutine, so the
// worker and the main thread can both call it without synchronization.
// The real implementation composes the
// out-of-scope external Renderer/PNGEncoder contracts (internal/typeset);
// this package only depends on the narrow interface below.
type Renderer interface {
	RenderTile(ctx context.Context, tile *doc.Tile, ppi float64) ([]byte, error)
	RenderSidebar(ctx context.Context, tile *doc.Tile, lines []*doc.VisualLine, ppi float64) ([]byte, error)
}

// renderPair renders both images for a tile, content then sidebar, in
// that order.
func renderPair(ctx context.Context, r Renderer, tile *doc.Tile, lines []*doc.VisualLine, ppi float64) (doc.TilePNGPair, error) {
	content, err := r.RenderTile(ctx, tile, ppi)
	if err != nil {
		return doc.TilePNGPair{}, err
	}
	sidebar, err := r.RenderSidebar(ctx, tile, lines, ppi)
	if err != nil {
		return doc.TilePNGPair{}, err
	}
	return doc.TilePNGPair{Content: content, Sidebar: sidebar}, nil
}
