package tilecache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prosepane/prosepane/internal/doc"
)

type fakeRenderer struct {
	calls map[int]int
}

func newFakeRenderer() *fakeRenderer { return &fakeRenderer{calls: map[int]int{}} }

func (f *fakeRenderer) RenderTile(ctx context.Context, tile *doc.Tile, ppi float64) ([]byte, error) {
	f.calls[tile.Index]++
	return []byte(fmt.Sprintf("content-%d-%v", tile.Index, ppi)), nil
}

func (f *fakeRenderer) RenderSidebar(ctx context.Context, tile *doc.Tile, lines []*doc.VisualLine, ppi float64) ([]byte, error) {
	return []byte(fmt.Sprintf("sidebar-%d", tile.Index)), nil
}

func tilesFixture(n int) []*doc.Tile {
	tiles := make([]*doc.Tile, n)
	for i := range tiles {
		tiles[i] = &doc.Tile{Index: i, YStartPt: float64(i * 100), YEndPt: float64((i + 1) * 100), HeightPt: 100}
	}
	return tiles
}

func TestCache_EvictsOutsideDistance(t *testing.T) {
	c := NewCache()
	for i := 0; i < 10; i++ {
		c.Insert(i, doc.TilePNGPair{Content: []byte("x")}, i, 2)
	}
	if _, ok := c.Get(9); !ok {
		t.Fatal("expected tile 9 (current) to remain cached")
	}
	if _, ok := c.Get(0); ok {
		t.Fatal("expected tile 0 to be evicted once far from current")
	}
}

func TestCache_ShouldRequestRespectsCacheAndInFlight(t *testing.T) {
	c := NewCache()
	if !c.ShouldRequest(3) {
		t.Fatal("expected fresh index to be requestable")
	}
	c.MarkInFlight(3)
	if c.ShouldRequest(3) {
		t.Fatal("in-flight index must not be requested again")
	}
	c.ClearInFlight(3)
	c.Insert(3, doc.TilePNGPair{}, 3, 4)
	if c.ShouldRequest(3) {
		t.Fatal("cached index must not be requested again")
	}
}

func TestWorker_RendersInFIFOOrderAndDrainKeepsQuiescence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renderer := newFakeRenderer()
	tiles := tilesFixture(5)
	w := NewWorker(ctx, renderer, tiles, nil, 144)
	defer w.Close()

	cache := NewCache()
	order := PrefetchOrder(2, len(tiles))
	Dispatch(w, cache, order)

	deadline := time.After(time.Second)
	var received []int
	for len(received) < len(order) {
		select {
		case resp := <-w.Responses():
			if resp.TileIndex != order[len(received)] {
				t.Fatalf("response %d is tile %d, want tile %d (FIFO order %v)", len(received), resp.TileIndex, order[len(received)], order)
			}
			cache.ClearInFlight(resp.TileIndex)
			cache.Insert(resp.TileIndex, resp.Pair, 2, 4)
			received = append(received, resp.TileIndex)
		case <-deadline:
			t.Fatal("timed out waiting for prefetch responses")
		}
	}

	if !cache.Quiescent() {
		t.Fatal("cache must be quiescent once all responses are drained")
	}
	for _, idx := range order {
		if _, ok := cache.Get(idx); !ok {
			t.Fatalf("expected tile %d to be cached after prefetch", idx)
		}
	}
}

func TestPrefetchOrder_ClampsToValidRange(t *testing.T) {
	order := PrefetchOrder(0, 3)
	for _, idx := range order {
		if idx < 0 || idx >= 3 {
			t.Fatalf("prefetch order contains out-of-range index %d", idx)
		}
	}
}

func TestGetOrRender_RendersOnceOnMiss(t *testing.T) {
	renderer := newFakeRenderer()
	cache := NewCache()
	tiles := tilesFixture(1)

	pair1, err := GetOrRender(context.Background(), cache, renderer, tiles[0], nil, 144, 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	pair2, err := GetOrRender(context.Background(), cache, renderer, tiles[0], nil, 144, 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	if string(pair1.Content) != string(pair2.Content) {
		t.Fatal("expected identical bytes from a cached render")
	}
	if renderer.calls[0] != 1 {
		t.Fatalf("expected exactly one render call, got %d", renderer.calls[0])
	}
}
