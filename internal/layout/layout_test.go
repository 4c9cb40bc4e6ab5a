package layout

import (
	"testing"

	"github.com/prosepane/prosepane/internal/doc"
)

func geomFixture() Geometry {
	return Geometry{TerminalRows: 40, TerminalCols: 90, PixelWidth: 900, PixelHeight: 800, SidebarCols: 6}
}

func linesFixture() []*doc.VisualLine {
	lines := make([]*doc.VisualLine, 10)
	for i := range lines {
		lines[i] = &doc.VisualLine{YPt: float64(i * 20), YPx: float64(i * 20)}
	}
	return lines
}

func TestGeometry_DerivedValues(t *testing.T) {
	g := geomFixture()
	if g.ImageCols() != 84 {
		t.Fatalf("image cols = %d, want 84", g.ImageCols())
	}
	if g.ImageRows() != 39 {
		t.Fatalf("image rows = %d, want 39", g.ImageRows())
	}
	if g.HalfPageCells() != 19 {
		t.Fatalf("half page = %d, want 19", g.HalfPageCells())
	}
}

func TestViewport_ScrollByStaysSnappedToALine(t *testing.T) {
	lines := linesFixture()
	v := Viewport{YOffsetPx: 0}
	v.ScrollBy(lines, 1, 20)
	found := false
	for _, l := range lines {
		if l.YPx == v.YOffsetPx {
			found = true
		}
	}
	if !found {
		t.Fatalf("viewport offset %v is not snapped to any visual line", v.YOffsetPx)
	}
}

func TestViewport_ScrollToLineThenCurrentIndexRoundTrips(t *testing.T) {
	lines := linesFixture()
	v := Viewport{}
	v.ScrollToLine(lines, 5)
	if got := v.CurrentLineIndex(lines); got != 5 {
		t.Fatalf("CurrentLineIndex = %d, want 5", got)
	}
}

func TestViewport_ScrollToLineClampsOutOfRange(t *testing.T) {
	lines := linesFixture()
	v := Viewport{}
	v.ScrollToLine(lines, 9999)
	if got := v.CurrentLineIndex(lines); got != len(lines) {
		t.Fatalf("expected clamp to last line %d, got %d", len(lines), got)
	}
	v.ScrollToLine(lines, -5)
	if got := v.CurrentLineIndex(lines); got != 1 {
		t.Fatalf("expected clamp to first line, got %d", got)
	}
}

func TestViewport_EmptyDocumentScrollIsNoOp(t *testing.T) {
	v := Viewport{YOffsetPx: 0}
	v.ScrollBy(nil, 5, 20)
	if v.YOffsetPx != 0 {
		t.Fatalf("expected no-op scroll on empty document, got %v", v.YOffsetPx)
	}
}

func TestVisibleTiles_IntersectsViewport(t *testing.T) {
	g := Geometry{TerminalRows: 21, TerminalCols: 90, PixelWidth: 900, PixelHeight: 400, SidebarCols: 6}
	tiles := []*doc.Tile{
		{Index: 0, YStartPt: 0, YEndPt: 100},
		{Index: 1, YStartPt: 100, YEndPt: 200},
		{Index: 2, YStartPt: 200, YEndPt: 300},
	}
	v := Viewport{YOffsetPx: 50}
	placements := VisibleTiles(tiles, g, v, 1.0)
	if len(placements) == 0 {
		t.Fatal("expected at least one visible tile")
	}
	if placements[0].TileIndex != 0 {
		t.Fatalf("expected tile 0 to be the first visible tile, got %d", placements[0].TileIndex)
	}
}

func TestVisibleTiles_OnlyOneTileCanBeCrossedByTop(t *testing.T) {
	// Splitter guarantees effective_min_height >= viewport height, so the
	// viewport's top edge can cross at most one tile boundary.
	g := Geometry{TerminalRows: 21, TerminalCols: 90, PixelWidth: 900, PixelHeight: 400, SidebarCols: 6}
	tiles := []*doc.Tile{
		{Index: 0, YStartPt: 0, YEndPt: 500},
		{Index: 1, YStartPt: 500, YEndPt: 1000},
	}
	v := Viewport{YOffsetPx: 480}
	placements := VisibleTiles(tiles, g, v, 1.0)
	crossing := 0
	for _, p := range placements {
		if p.Crop.Y > 0 && p.Crop.Y < int(tiles[p.TileIndex].YEndPt-tiles[p.TileIndex].YStartPt) {
			crossing++
		}
	}
	if crossing > 1 {
		t.Fatalf("expected at most one tile crossed by the viewport top, got %d", crossing)
	}
}
