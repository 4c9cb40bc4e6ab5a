package layout

import "github.com/prosepane/prosepane/internal/doc"

// CropRect is the source crop rectangle within a tile image, in pixels.
type CropRect struct {
	X, Y, W, H int
}

// Placement is one visible tile's terminal position plus crop.
type Placement struct {
	TileIndex int
	Row       int // terminal row the slice starts at
	Crop      CropRect
	RowsSpan  int // cell rows this slice occupies
}

// VisibleTiles returns the ordered list of tiles intersecting the
// viewport at the current scroll offset, each with its crop rectangle and
// terminal placement (the "Visible tiles" rule).
//
// pxPerPt is the document's own point-to-pixel ratio (ppi/72, the same
// factor passed to internal/visualline.Extract when building y_px) — it is
// independent of the terminal's cell pixel height (Geometry.CellPxY),
// which only says how many of those same device pixels one terminal row
// covers. Both values are needed because tile bounds live in point space
// while the viewport offset lives in the device-pixel space y_px shares.
func VisibleTiles(tiles []*doc.Tile, g Geometry, v Viewport, pxPerPt float64) []Placement {
	if len(tiles) == 0 {
		return nil
	}
	cellPxY := g.CellPxY()
	if cellPxY <= 0 || pxPerPt <= 0 {
		return nil
	}
	viewTopPx := v.YOffsetPx
	viewBottomPx := viewTopPx + g.ViewportHeightPx()
	imageWidthPx := g.ImageCols() * int(g.CellPxX())

	var placements []Placement
	row := 0
	for _, tile := range tiles {
		topPx, bottomPx := tilePixelBounds(tile, pxPerPt)
		if topPx >= viewBottomPx {
			break
		}
		if bottomPx <= viewTopPx {
			continue
		}
		sliceTop := maxF(topPx, viewTopPx)
		sliceBottom := minF(bottomPx, viewBottomPx)
		offsetIntoTilePx := int(sliceTop - topPx)
		sliceHeightPx := int(sliceBottom - sliceTop)
		rowsSpan := int(float64(sliceHeightPx) / cellPxY)
		if rowsSpan < 1 {
			rowsSpan = 1
		}
		placements = append(placements, Placement{
			TileIndex: tile.Index,
			Row:       row,
			Crop:      CropRect{X: 0, Y: offsetIntoTilePx, W: imageWidthPx, H: sliceHeightPx},
			RowsSpan:  rowsSpan,
		})
		row += rowsSpan
		if row >= g.ImageRows() {
			break
		}
	}
	return placements
}

// tilePixelBounds converts a tile's point-space Y range to the device
// pixel space y_px shares, via the document's ppi-derived ratio.
func tilePixelBounds(tile *doc.Tile, pxPerPt float64) (topPx, bottomPx float64) {
	return tile.YStartPt * pxPerPt, tile.YEndPt * pxPerPt
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
