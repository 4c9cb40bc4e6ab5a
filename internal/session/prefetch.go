package session

import (
	"github.com/prosepane/prosepane/internal/layout"
	"github.com/prosepane/prosepane/internal/tilecache"
)

// prefetch drains any responses that already arrived, then dispatches the
// fixed-order look-ahead requests around the tile the viewport currently
// sits in.
func (s *Session) prefetch(build *Build, geo *layout.Geometry, viewport *layout.Viewport, cache *tilecache.Cache, worker *tilecache.Worker, pxPerPt float64) {
	placements := layout.VisibleTiles(build.Tiles, *geo, *viewport, pxPerPt)
	current := currentTileIndex(placements)
	tilecache.DrainResponses(worker, cache, current, s.Cfg.Viewer.EvictDistance)
	candidates := tilecache.PrefetchOrder(current, len(build.Tiles))
	tilecache.Dispatch(worker, cache, candidates)
}
