package tilecache

import (
	"context"

	"github.com/prosepane/prosepane/internal/doc"
)

// Request is sent from the main thread to the prefetch worker.
type Request struct {
	TileIndex int
}

// Response is sent back from the worker once a tile has rendered.
type Response struct {
	TileIndex int
	Pair      doc.TilePNGPair
	Err       error
}

// Worker is the single long-lived background renderer bound to one
// document build. It renders content and sidebar PNGs in the order
// requests arrive — FIFO, no drain-to-latest — so that independent
// neighbour prefetches don't starve each other.
type Worker struct {
	renderer Renderer
	lines    []*doc.VisualLine
	ppi      float64
	req      chan Request
	res      chan Response
}

// NewWorker starts the worker goroutine. It runs until ctx is cancelled or
// req is closed, whichever happens first; callers close the request
// channel to terminate the scoped region on Resize/Reload/Quit.
func NewWorker(ctx context.Context, renderer Renderer, tiles []*doc.Tile, lines []*doc.VisualLine, ppi float64) *Worker {
	w := &Worker{
		renderer: renderer,
		lines:    lines,
		ppi:      ppi,
		req:      make(chan Request),
		res:      make(chan Response, len(tiles)),
	}
	go w.run(ctx, tiles)
	return w
}

// Requests returns the channel the main thread sends prefetch requests on.
func (w *Worker) Requests() chan<- Request { return w.req }

// Responses returns the channel the main thread drains render results
// from.
func (w *Worker) Responses() <-chan Response { return w.res }

// Close terminates the worker by closing the request channel; the worker
// finishes rendering whatever request it is currently processing (bounded
// by one tile's render time) and then exits.
func (w *Worker) Close() { close(w.req) }

func (w *Worker) run(ctx context.Context, tiles []*doc.Tile) {
	byIndex := make(map[int]*doc.Tile, len(tiles))
	for _, t := range tiles {
		byIndex[t.Index] = t
	}

	for {
		select {
		case req, ok := <-w.req:
			if !ok {
				return
			}
			tile, ok := byIndex[req.TileIndex]
			if !ok {
				continue
			}
			pair, err := renderPair(ctx, w.renderer, tile, w.lines, w.ppi)
			select {
			case w.res <- Response{TileIndex: req.TileIndex, Pair: pair, Err: err}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// DrainResponses does a non-blocking drain: before computing which tiles
// to prefetch, consume every response that has already arrived and fold
// it into the cache. This avoids re-requesting a tile whose render
// finished between the last redraw and this one.
func DrainResponses(w *Worker, cache *Cache, current, evictDistance int) {
	for {
		select {
		case resp := <-w.res:
			cache.ClearInFlight(resp.TileIndex)
			if resp.Err == nil {
				cache.Insert(resp.TileIndex, resp.Pair, current, evictDistance)
			}
		default:
			return
		}
	}
}

// PrefetchOrder is the fixed dispatch order: current+1, current+2, then
// current-1.
func PrefetchOrder(current, tileCount int) []int {
	candidates := []int{current + 1, current + 2, current - 1}
	var valid []int
	for _, idx := range candidates {
		if idx >= 0 && idx < tileCount {
			valid = append(valid, idx)
		}
	}
	return valid
}

// Dispatch requests every candidate tile that ShouldRequest approves,
// marking it in-flight immediately so a second call in the same redraw
// cycle does not double-request it.
func Dispatch(w *Worker, cache *Cache, candidates []int) {
	for _, idx := range candidates {
		if !cache.ShouldRequest(idx) {
			continue
		}
		cache.MarkInFlight(idx)
		w.req <- Request{TileIndex: idx}
	}
}
