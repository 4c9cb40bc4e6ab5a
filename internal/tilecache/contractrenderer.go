package tilecache

import (
	"context"
	"fmt"

	"github.com/prosepane/prosepane/internal/doc"
	"github.com/prosepane/prosepane/internal/typeset"
)

// ContractRenderer implements Renderer by driving the external
// Renderer/PNGEncoder contracts: the content image is the tile's own
// sub-frame rasterized directly; the sidebar image is a synthetic frame
// of line-number text runs built from the tile's visual lines and
// rasterized the same way, so both images go through the exact same
// render/encode path.
type ContractRenderer struct {
	Renderer typeset.Renderer
	Encoder  typeset.PNGEncoder

	// SidebarFont and SidebarSizePt style the line-number column; callers
	// normally pass whatever the active theme specifies for UI chrome.
	SidebarFont   string
	SidebarSizePt float64
	SidebarWidth  float64 // pt; must match viewer.sidebar_cols converted to pt
}

func (c ContractRenderer) RenderTile(ctx context.Context, tile *doc.Tile, ppi float64) ([]byte, error) {
	pix, err := c.Renderer.Render(ctx, tile.SubFrame, ppi)
	if err != nil {
		return nil, fmt.Errorf("tilecache: render tile %d: %w", tile.Index, err)
	}
	png, err := c.Encoder.Encode(pix)
	if err != nil {
		return nil, fmt.Errorf("tilecache: encode tile %d: %w", tile.Index, err)
	}
	return png, nil
}

func (c ContractRenderer) RenderSidebar(ctx context.Context, tile *doc.Tile, lines []*doc.VisualLine, ppi float64) ([]byte, error) {
	frame := c.sidebarFrame(tile, lines)
	pix, err := c.Renderer.Render(ctx, frame, ppi)
	if err != nil {
		return nil, fmt.Errorf("tilecache: render sidebar %d: %w", tile.Index, err)
	}
	png, err := c.Encoder.Encode(pix)
	if err != nil {
		return nil, fmt.Errorf("tilecache: encode sidebar %d: %w", tile.Index, err)
	}
	return png, nil
}

// sidebarFrame builds a synthetic frame containing one text run per visual
// line that falls in tile's Y-range, labeled with that line's 1-based
// position, positioned at the line's Y offset relative to the tile top.
func (c ContractRenderer) sidebarFrame(tile *doc.Tile, lines []*doc.VisualLine) *doc.Frame {
	items := make([]*doc.Item, 0, len(lines))
	for i, vl := range lines {
		if vl.YPt < tile.YStartPt || vl.YPt >= tile.YEndPt {
			continue
		}
		items = append(items, &doc.Item{
			Kind:   doc.KindText,
			Offset: doc.Pt{X: 0, Y: vl.YPt - tile.YStartPt},
			Run: &doc.TextRun{
				Font:   c.SidebarFont,
				SizePt: c.SidebarSizePt,
				Text:   fmt.Sprintf("%d", i+1),
			},
			HeightPt: c.SidebarSizePt,
			WidthPt:  c.SidebarWidth,
		})
	}
	return &doc.Frame{WidthPt: c.SidebarWidth, HeightPt: tile.HeightPt, Items: items}
}
