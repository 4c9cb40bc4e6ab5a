// Package splitter implements the frame-tree splitter : // it turns one tall auto-height page into vertical tiles without
// re-running layout. The page frame's items keep their original absolute
// coordinates; each tile holds shifted copies of its top-level items so
// its own rendering starts at Y=0.
package splitter

import "github.com/prosepane/prosepane/internal/doc"

// Split walks page.Items in source order and partitions them into tiles.
// effectiveMinHeight = max(minHeightPt, viewportHeightPt), so every tile
// is guaranteed to cover at least one viewport height  —
// the caller passes that in directly since this package does not know
// about viewports.
func Split(page *doc.Frame, minHeightPt, viewportHeightPt float64) []*doc.Tile {
	effectiveMin := minHeightPt
	if viewportHeightPt > effectiveMin {
		effectiveMin = viewportHeightPt
	}

	if len(page.Items) == 0 {
		return []*doc.Tile{emptyTile(page.HeightPt)}
	}

	var tiles []*doc.Tile
	tileStartY := 0.0
	var current []*doc.Item

	flush := func(endY float64) {
		tiles = append(tiles, buildTile(len(tiles), tileStartY, endY, current, page.WidthPt))
		current = nil
	}

	for _, it := range page.Items {
		top := it.AbsoluteTop(0)
		if len(current) > 0 && top > tileStartY+effectiveMin {
			flush(top)
			tileStartY = top
		}
		current = append(current, it)
	}
	flush(page.HeightPt)

	return tiles
}

func emptyTile(heightPt float64) *doc.Tile {
	return &doc.Tile{
		Index:    0,
		YStartPt: 0,
		YEndPt:   heightPt,
		HeightPt: heightPt,
		SubFrame: &doc.Frame{WidthPt: 0, HeightPt: heightPt},
	}
}

// buildTile re-offsets items so the tile's sub-frame starts at Y=0: each
// top-level item gets a cloned wrapper whose Offset.Y is shifted by
// -startY, leaving the original items (and the page frame) untouched.
func buildTile(index int, startY, endY float64, items []*doc.Item, widthPt float64) *doc.Tile {
	shifted := make([]*doc.Item, len(items))
	for i, it := range items {
		clone := *it
		clone.Offset.Y -= startY
		shifted[i] = &clone
	}
	return &doc.Tile{
		Index:    index,
		YStartPt: startY,
		YEndPt:   endY,
		HeightPt: endY - startY,
		SubFrame: &doc.Frame{WidthPt: widthPt, HeightPt: endY - startY, Items: shifted},
	}
}
