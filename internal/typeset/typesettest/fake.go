// Package typesettest provides deterministic fakes for the external
// typeset contracts, used by unit tests and as the default wiring of the
// viewer and the `prosepane render` subcommand, since no real typesetter
// binding exists in this repository. The fake tile renderer
// draws a solid-colored, labeled fixture PNG with github.com/disintegration/imaging
// and golang.org/x/image/font/basicfont rather than hand-rolled pixel
// loops, mirroring how rupor-github-fb2cng composes imaging operations
// over a plain image.NRGBA canvas for its cover/thumbnail pipeline.
package typesettest

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/prosepane/prosepane/internal/doc"
)

// Renderer implements tilecache.Renderer directly, skipping the
// Renderer/PNGEncoder split entirely. It exists for tests and callers
// that want a tilecache.Renderer with no typeset.Renderer/PNGEncoder
// plumbing in between; production wiring instead composes PixelRenderer
// and PNGEncoder through tilecache.ContractRenderer.
type Renderer struct{}

// RenderTile draws a fixture tile: a flat background tinted by index plus
// the tile's Y range stamped as text.
func (Renderer) RenderTile(ctx context.Context, tile *doc.Tile, ppi float64) ([]byte, error) {
	w := int(tile.SubFrame.WidthPt * ppi / 72)
	if w <= 0 {
		w = 1
	}
	h := int(tile.HeightPt * ppi / 72)
	if h <= 0 {
		h = 1
	}
	label := fmt.Sprintf("tile %d [%.0f,%.0f)", tile.Index, tile.YStartPt, tile.YEndPt)
	return fixturePNG(w, h, tintFor(tile.Index), label)
}

// RenderSidebar draws a fixture sidebar strip listing the visual-line
// numbers visible within the tile's Y range.
func (Renderer) RenderSidebar(ctx context.Context, tile *doc.Tile, lines []*doc.VisualLine, ppi float64) ([]byte, error) {
	w := 48
	h := int(tile.HeightPt * ppi / 72)
	if h <= 0 {
		h = 1
	}
	count := 0
	for _, l := range lines {
		if l.YPt >= tile.YStartPt && l.YPt < tile.YEndPt {
			count++
		}
	}
	label := fmt.Sprintf("%d lines", count)
	return fixturePNG(w, h, color.Gray{Y: 220}, label)
}

func tintFor(index int) color.Color {
	palette := []color.Color{
		color.RGBA{R: 250, G: 250, B: 245, A: 255},
		color.RGBA{R: 245, G: 248, B: 255, A: 255},
		color.RGBA{R: 248, G: 250, B: 245, A: 255},
	}
	return palette[index%len(palette)]
}

func fixturePNG(w, h int, bg color.Color, label string) ([]byte, error) {
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 12),
	}
	if h > 12 && w > 4 {
		drawer.DrawString(label)
	}

	// imaging.Clone forces the fixture through the ecosystem image
	// pipeline (resize-capable NRGBA processing) rather than stdlib draw
	// alone, matching fb2cng's practice of always routing raster output
	// through imaging before encode.
	out := imaging.Clone(canvas)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
