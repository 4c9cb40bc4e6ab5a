package tilecache

import (
	"context"

	"github.com/prosepane/prosepane/internal/doc"
)

// GetOrRender returns the cached pair for idx, rendering synchronously on
// the main thread on a miss (the "get_or_render(idx)" rule). It does
// not touch the in-flight set: a synchronous render is not a prefetch
// request and completes before returning.
func GetOrRender(ctx context.Context, cache *Cache, renderer Renderer, tile *doc.Tile, lines []*doc.VisualLine, ppi float64, current, evictDistance int) (doc.TilePNGPair, error) {
	if pair, ok := cache.Get(tile.Index); ok {
		return pair, nil
	}
	pair, err := renderPair(ctx, renderer, tile, lines, ppi)
	if err != nil {
		return doc.TilePNGPair{}, err
	}
	cache.Insert(tile.Index, pair, current, evictDistance)
	return pair, nil
}
