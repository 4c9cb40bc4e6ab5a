package session

import (
	"context"
	"testing"

	"github.com/prosepane/prosepane/internal/config"
	"github.com/prosepane/prosepane/internal/doc"
	"github.com/prosepane/prosepane/internal/layout"
	"github.com/prosepane/prosepane/internal/modal"
	"github.com/prosepane/prosepane/internal/tilecache"
)

type stubRenderer struct{ calls int }

func (r *stubRenderer) RenderTile(ctx context.Context, tile *doc.Tile, ppi float64) ([]byte, error) {
	r.calls++
	return []byte("content"), nil
}

func (r *stubRenderer) RenderSidebar(ctx context.Context, tile *doc.Tile, lines []*doc.VisualLine, ppi float64) ([]byte, error) {
	return []byte("sidebar"), nil
}

func TestCurrentTileIndex(t *testing.T) {
	if got := currentTileIndex(nil); got != 0 {
		t.Fatalf("empty placements: got %d, want 0", got)
	}
	placements := []layout.Placement{{TileIndex: 3}, {TileIndex: 4}}
	if got := currentTileIndex(placements); got != 3 {
		t.Fatalf("got %d, want 3 (first placement wins)", got)
	}
}

func TestModeIndicator_PriorityOrder(t *testing.T) {
	st := modal.New()
	if got := modeIndicator(st, "flashed"); got != "flashed" {
		t.Fatalf("flash should win: got %q", got)
	}

	st = modal.New()
	st.HasPrefix = true
	st.Prefix = 12
	if got := modeIndicator(st, ""); got != "12" {
		t.Fatalf("prefix echo: got %q, want 12", got)
	}

	st = modal.New()
	st.Mode = modal.ModeSearch
	st.SearchQuery = "foo"
	if got := modeIndicator(st, ""); got != "/foo" {
		t.Fatalf("search echo: got %q", got)
	}

	st = modal.New()
	st.Mode = modal.ModeCommand
	st.CommandLine = "quit"
	if got := modeIndicator(st, ""); got != ":quit" {
		t.Fatalf("command echo: got %q", got)
	}

	st = modal.New()
	if got := modeIndicator(st, ""); got != "" {
		t.Fatalf("idle normal mode: got %q, want empty", got)
	}
}

func TestSession_CollectPairs_RendersOnMissAndCaches(t *testing.T) {
	tiles := []*doc.Tile{{Index: 0, YStartPt: 0, YEndPt: 500, HeightPt: 500}}
	build := &Build{Tiles: tiles, Lines: nil}
	renderer := &stubRenderer{}
	s := &Session{Renderer: renderer}
	s.Cfg.PPI = 144
	s.Cfg.Viewer.EvictDistance = 4

	cache := tilecache.NewCache()
	placements := []layout.Placement{{TileIndex: 0}}

	content, sidebar, err := s.collectPairs(context.Background(), build, cache, placements)
	if err != nil {
		t.Fatalf("collectPairs: %v", err)
	}
	if string(content[0].Content) != "content" {
		t.Fatalf("content[0] = %q", content[0].Content)
	}
	if string(sidebar[0].Sidebar) != "sidebar" {
		t.Fatalf("sidebar[0] = %q", sidebar[0].Sidebar)
	}
	if renderer.calls != 1 {
		t.Fatalf("expected exactly one render call, got %d", renderer.calls)
	}

	// Second call should hit the cache, not render again.
	if _, _, err := s.collectPairs(context.Background(), build, cache, placements); err != nil {
		t.Fatalf("collectPairs (cached): %v", err)
	}
	if renderer.calls != 1 {
		t.Fatalf("expected cache hit to skip rendering, got %d calls", renderer.calls)
	}
}

func TestSession_ApplyKey_QuitEffectStops(t *testing.T) {
	s := &Session{Cfg: config.Default()}
	build := &Build{Lines: []*doc.VisualLine{{YPt: 0}}}
	geo := &layout.Geometry{TerminalRows: 24, TerminalCols: 80, PixelWidth: 800, PixelHeight: 480}
	viewport := &layout.Viewport{}
	modalState := modal.New()
	var flash string

	reason, _, stop := s.applyKey(modal.Key{Rune: 'q'}, build, geo, viewport, &modalState, &flash)
	if !stop {
		t.Fatal("expected 'q' to stop the inner loop")
	}
	if reason != exitQuit {
		t.Fatalf("expected exitQuit, got %v", reason)
	}
}

func TestSession_ApplyKey_ScrollMovesViewport(t *testing.T) {
	s := &Session{Cfg: config.Default()}
	s.Cfg.Viewer.ScrollStep = 3
	build := &Build{Lines: []*doc.VisualLine{{YPt: 0, YPx: 0}, {YPt: 16, YPx: 16}, {YPt: 32, YPx: 32}, {YPt: 48, YPx: 48}}}
	geo := &layout.Geometry{TerminalRows: 24, TerminalCols: 80, PixelWidth: 800, PixelHeight: 384}
	viewport := &layout.Viewport{}
	modalState := modal.New()
	var flash string

	_, dirty, stop := s.applyKey(modal.Key{Rune: 'j'}, build, geo, viewport, &modalState, &flash)
	if stop {
		t.Fatal("'j' should not stop the loop")
	}
	if !dirty {
		t.Fatal("scrolling should mark the frame dirty")
	}
	if viewport.YOffsetPx == 0 {
		t.Fatal("expected viewport to move down")
	}
}
