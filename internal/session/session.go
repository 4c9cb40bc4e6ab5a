// Package session implements the outer loop: the document build/rebuild
// lifecycle across resize, reload, and config change, with a prefetch
// worker scoped to each build.
package session

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prosepane/prosepane/internal/clipboard"
	"github.com/prosepane/prosepane/internal/config"
	"github.com/prosepane/prosepane/internal/doc"
	"github.com/prosepane/prosepane/internal/layout"
	"github.com/prosepane/prosepane/internal/modal"
	"github.com/prosepane/prosepane/internal/presenter"
	"github.com/prosepane/prosepane/internal/tilecache"
	"github.com/prosepane/prosepane/internal/urlopen"
)

// exitReason names why one document build's inner loop stopped.
type exitReason int

const (
	exitQuit exitReason = iota
	exitResize
	exitReload
)

// Session wires every component together for one view invocation. All
// fields must be set before calling Run.
type Session struct {
	Builder  DocBuilder
	Cfg      config.Config
	Source   MarkdownSource
	Renderer tilecache.Renderer

	Stdin      *os.File
	Stdout     *os.File
	GeometryFd int

	Logger *zap.Logger

	frame *presenter.Frame
}

// Run executes the build/rebuild lifecycle until Quit. The caller is
// responsible for having already entered raw mode/alt screen via
// presenter.Enter and for restoring it afterward.
func (s *Session) Run(ctx context.Context) error {
	kr := newKeyReader(s.Stdin)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGWINCH)
	defer signal.Stop(sigChan)

	viewport := layout.Viewport{}
	modalState := modal.New()
	var flashMsg string

	cols, rows, pxW, pxH, err := presenter.Size(s.GeometryFd)
	if err != nil {
		return fmt.Errorf("session: query terminal size: %w", err)
	}
	geo := layout.Geometry{TerminalRows: rows, TerminalCols: cols, PixelWidth: pxW, PixelHeight: pxH, SidebarCols: s.Cfg.Viewer.SidebarCols}
	s.frame = presenter.NewFrame(s.Stdout, s.Cfg.Viewer.SidebarCols)

	for {
		markdown, err := s.Source.Contents()
		if err != nil {
			return fmt.Errorf("session: read input source: %w", err)
		}

		build, err := s.Builder.Build(ctx, markdown, geo.ViewportHeightPx()*72.0/s.Cfg.PPI)
		if err != nil {
			s.Logger.Error("document build failed", zap.Error(err))
			flashMsg = err.Error()
		}
		if build == nil {
			// Nothing renderable yet; wait for the next change.
			<-s.Source.Changes()
			continue
		}
		generation := uuid.New()
		s.Logger.Info("document build", zap.String("generation", generation.String()), zap.Int("tiles", len(build.Tiles)), zap.Int("lines", len(build.Lines)))
		viewport.SnapToNearestLine(build.Lines)

		reason, err := s.runBuild(ctx, build, &geo, &viewport, &modalState, &flashMsg, kr, sigChan)
		if err != nil {
			return err
		}
		if reason == exitQuit {
			return nil
		}
		if reason == exitResize {
			cols, rows, pxW, pxH, err = presenter.Size(s.GeometryFd)
			if err != nil {
				return fmt.Errorf("session: re-query terminal size: %w", err)
			}
			geo.TerminalRows, geo.TerminalCols, geo.PixelWidth, geo.PixelHeight = rows, cols, pxW, pxH
		}
	}
}

// runBuild runs the scoped region and inner event loop for one Build:
// redraw, prefetch dispatch, then wait on whichever of resize, reload,
// a worker response, a decoded key, or the frame-budget timeout fires
// next.
func (s *Session) runBuild(
	ctx context.Context,
	build *Build,
	geo *layout.Geometry,
	viewport *layout.Viewport,
	modalState *modal.State,
	flashMsg *string,
	kr *keyReader,
	sigChan <-chan os.Signal,
) (exitReason, error) {
	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cache := tilecache.NewCache()
	pxPerPt := s.Cfg.PPI / 72.0
	worker := tilecache.NewWorker(workerCtx, s.Renderer, build.Tiles, build.Lines, s.Cfg.PPI)
	defer worker.Close()

	frameBudget := time.Duration(s.Cfg.Viewer.FrameBudgetMs) * time.Millisecond
	dirty := true
	var keyBuf []byte

	for {
		if dirty {
			if err := s.redraw(ctx, build, geo, viewport, cache, *flashMsg, *modalState); err != nil {
				return exitQuit, err
			}
			*flashMsg = ""
			s.prefetch(build, geo, viewport, cache, worker, pxPerPt)
			dirty = false
		}

		select {
		case <-ctx.Done():
			return exitQuit, ctx.Err()

		case <-sigChan:
			return exitResize, nil

		case <-s.Source.Changes():
			return exitReload, nil

		case resp := <-worker.Responses():
			cache.ClearInFlight(resp.TileIndex)
			if resp.Err == nil {
				placements := layout.VisibleTiles(build.Tiles, *geo, *viewport, pxPerPt)
				cache.Insert(resp.TileIndex, resp.Pair, currentTileIndex(placements), s.Cfg.Viewer.EvictDistance)
				dirty = true
			}

		case chunk := <-kr.chunks:
			keyBuf = append(keyBuf, chunk...)
			for {
				key, n := decodeKey(keyBuf)
				if n == 0 {
					break
				}
				keyBuf = keyBuf[n:]
				reason, isDirty, stop := s.applyKey(key, build, geo, viewport, modalState, flashMsg)
				if isDirty {
					dirty = true
				}
				if stop {
					return reason, nil
				}
			}

		case err := <-kr.errs:
			return exitQuit, fmt.Errorf("session: read stdin: %w", err)

		case <-time.After(frameBudget):
			// Pipe mode drains here; a file source's Pump is a no-op.
			s.Source.Pump()
		}
	}
}

// applyKey dispatches one decoded key through the modal engine and
// applies whatever effects it produced.
func (s *Session) applyKey(key modal.Key, build *Build, geo *layout.Geometry, viewport *layout.Viewport, modalState *modal.State, flashMsg *string) (exitReason, bool, bool) {
	mctx := buildModalContext(build, viewport, s.Cfg.Viewer.ScrollStep, geo.HalfPageCells())
	effects, next := modal.Handle(*modalState, key, mctx)
	*modalState = next

	cellPxY := geo.CellPxY()
	dirty := false
	for _, e := range effects {
		switch e.Kind {
		case modal.EffectScrollBy:
			viewport.ScrollBy(build.Lines, e.ScrollCells, cellPxY)
			dirty = true
		case modal.EffectScrollToLine:
			viewport.ScrollToLine(build.Lines, e.Line)
			dirty = true
		case modal.EffectScrollToTop:
			viewport.ScrollToTop(build.Lines)
			dirty = true
		case modal.EffectScrollToBottom:
			viewport.ScrollToBottom(build.Lines)
			dirty = true
		case modal.EffectYank:
			if err := clipboard.Set(s.Stdout, e.Text); err != nil {
				s.Logger.Warn("clipboard set failed", zap.Error(err))
			}
			*flashMsg = "yanked"
			dirty = true
		case modal.EffectFlash:
			*flashMsg = e.Text
			dirty = true
		case modal.EffectSetMode:
			dirty = true
		case modal.EffectOpenURL:
			if err := urlopen.Open(e.URL); err != nil {
				s.Logger.Warn("url open failed", zap.Error(err))
			}
		case modal.EffectReload:
			return exitReload, dirty, true
		case modal.EffectQuit:
			return exitQuit, dirty, true
		}
	}
	return 0, dirty, false
}

func (s *Session) redraw(ctx context.Context, build *Build, geo *layout.Geometry, viewport *layout.Viewport, cache *tilecache.Cache, flashMsg string, modalState modal.State) error {
	pxPerPt := s.Cfg.PPI / 72.0
	placements := layout.VisibleTiles(build.Tiles, *geo, *viewport, pxPerPt)

	content, sidebar, err := s.collectPairs(ctx, build, cache, placements)
	if err != nil {
		return err
	}

	if err := s.frame.Draw(placements, content, sidebar, *geo); err != nil {
		return fmt.Errorf("session: draw frame: %w", err)
	}

	line := viewport.CurrentLineIndex(build.Lines)
	indicator := modeIndicator(modalState, flashMsg)
	status := presenter.StatusText(modalState.Mode.String(), indicator, line, len(build.Lines), geo.TerminalCols)
	if err := s.frame.DrawStatusBar(s.Stdout, status, geo.TerminalRows-1); err != nil {
		return fmt.Errorf("session: draw status bar: %w", err)
	}
	return nil
}

// collectPairs returns the cached (or synchronously-rendered-on-miss)
// PNG pair for every visible placement — the "get_or_render" rule is
// used on the redraw path, while the worker handles look-ahead prefetch.
func (s *Session) collectPairs(ctx context.Context, build *Build, cache *tilecache.Cache, placements []layout.Placement) (map[int]doc.TilePNGPair, map[int]doc.TilePNGPair, error) {
	byIdx := make(map[int]*doc.Tile, len(build.Tiles))
	for _, t := range build.Tiles {
		byIdx[t.Index] = t
	}
	current := currentTileIndex(placements)
	content := make(map[int]doc.TilePNGPair, len(placements))
	sidebar := make(map[int]doc.TilePNGPair, len(placements))
	for _, p := range placements {
		tile, ok := byIdx[p.TileIndex]
		if !ok {
			continue
		}
		pair, err := tilecache.GetOrRender(ctx, cache, s.Renderer, tile, build.Lines, s.Cfg.PPI, current, s.Cfg.Viewer.EvictDistance)
		if err != nil {
			return nil, nil, fmt.Errorf("session: render tile %d: %w", tile.Index, err)
		}
		content[tile.Index] = pair
		sidebar[tile.Index] = pair
	}
	return content, sidebar, nil
}

func currentTileIndex(placements []layout.Placement) int {
	if len(placements) == 0 {
		return 0
	}
	return placements[0].TileIndex
}

func modeIndicator(modalState modal.State, flashMsg string) string {
	if flashMsg != "" {
		return flashMsg
	}
	if modalState.HasPrefix {
		return fmt.Sprintf("%d", modalState.Prefix)
	}
	switch modalState.Mode {
	case modal.ModeSearch:
		return "/" + modalState.SearchQuery
	case modal.ModeCommand:
		return ":" + modalState.CommandLine
	}
	return ""
}
