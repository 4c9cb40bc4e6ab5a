package presenter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prosepane/prosepane/internal/doc"
	"github.com/prosepane/prosepane/internal/layout"
)

func TestStatusText_PadsToExactWidth(t *testing.T) {
	s := StatusText("NORMAL", "", 3, 10, 40)
	if len(s) != 40 {
		t.Fatalf("expected status text padded to 40 runes of ascii, got %d: %q", len(s), s)
	}
	if !strings.HasPrefix(s, "NORMAL | line 3/10") {
		t.Fatalf("unexpected status text: %q", s)
	}
}

func TestStatusText_TruncatesWhenTooLong(t *testing.T) {
	s := StatusText("SEARCH", "query-that-is-quite-long-indeed", 1, 1, 20)
	if runeLen := len([]rune(s)); runeLen > 20 {
		t.Fatalf("expected status text truncated to 20 cells, got %d runes: %q", runeLen, s)
	}
}

func TestFrame_ErasesPlacementsNotReusedThisFrame(t *testing.T) {
	var buf bytes.Buffer
	f := NewFrame(&buf, 0)
	geo := layout.Geometry{TerminalRows: 40, TerminalCols: 80, PixelWidth: 800, PixelHeight: 400, SidebarCols: 0}

	content := map[int]doc.TilePNGPair{
		0: {Content: []byte("tile0")},
		1: {Content: []byte("tile1")},
	}
	placements := []layout.Placement{
		{TileIndex: 0, Row: 0, Crop: layout.CropRect{W: 10, H: 10}, RowsSpan: 5},
		{TileIndex: 1, Row: 5, Crop: layout.CropRect{W: 10, H: 10}, RowsSpan: 5},
	}
	if err := f.Draw(placements, content, nil, geo); err != nil {
		t.Fatal(err)
	}

	buf.Reset()
	nextPlacements := []layout.Placement{
		{TileIndex: 1, Row: 0, Crop: layout.CropRect{W: 10, H: 10}, RowsSpan: 5},
	}
	if err := f.Draw(nextPlacements, content, nil, geo); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "a=d,d=i,i=1000") {
		t.Fatalf("expected tile 0's content placement (id 1000) to be erased once scrolled out, got: %q", out)
	}
	if strings.Contains(out, "a=d,d=i,i=1001") {
		t.Fatal("did not expect tile 1's placement to be erased since it's still visible")
	}
}
