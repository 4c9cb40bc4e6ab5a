package presenter

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/prosepane/prosepane/internal/doc"
	"github.com/prosepane/prosepane/internal/layout"
)

// Frame draws one redraw cycle: content placements, sidebar placements,
// and the status bar, then erases whatever placements the previous frame
// left behind that this frame did not reuse.
type Frame struct {
	driver  *ImageDriver
	sidebar int
	lastIDs map[uint32]bool
}

// NewFrame wires a Frame onto w, sidebarCols wide (0 disables the
// sidebar column entirely).
func NewFrame(w io.Writer, sidebarCols int) *Frame {
	return &Frame{driver: NewImageDriver(w), sidebar: sidebarCols, lastIDs: make(map[uint32]bool)}
}

// Draw places the content image for each visible tile, and, when the
// sidebar is enabled, the matching line-number column image immediately to
// its left. Tiles not present in placements this frame have their previous
// placement erased so no stale image lingers once scrolled out of view.
func (f *Frame) Draw(placements []layout.Placement, content, sidebar map[int]doc.TilePNGPair, geo layout.Geometry) error {
	seen := make(map[uint32]bool, len(placements)*2)
	sidebarColOffset := f.sidebar

	for _, p := range placements {
		cid := ContentID(p.TileIndex)
		pair, ok := content[p.TileIndex]
		if !ok {
			continue
		}
		if err := f.driver.Transfer(cid, pair.Content); err != nil {
			return err
		}
		if err := f.driver.Place(cid, p.Row, sidebarColOffset, p.Crop, geo.ImageCols(), p.RowsSpan); err != nil {
			return err
		}
		seen[cid] = true

		if f.sidebar > 0 {
			if sp, ok := sidebar[p.TileIndex]; ok {
				sid := SidebarID(p.TileIndex)
				if err := f.driver.Transfer(sid, sp.Sidebar); err != nil {
					return err
				}
				sidebarCrop := layout.CropRect{X: 0, Y: p.Crop.Y, W: f.sidebar * int(geo.CellPxX()), H: p.Crop.H}
				if err := f.driver.Place(sid, p.Row, 0, sidebarCrop, f.sidebar, p.RowsSpan); err != nil {
					return err
				}
				seen[sid] = true
			}
		}
	}

	for id := range f.lastIDs {
		if !seen[id] {
			if err := f.driver.ErasePlacements(id); err != nil {
				return err
			}
		}
	}
	f.lastIDs = seen
	return nil
}

// StatusText renders the status bar content: "<mode> | line N/total |
// <indicator>", truncated or padded with spaces to exactly cols terminal
// cells wide using rune-width accounting so wide glyphs in search queries
// don't overrun the line.
func StatusText(mode, indicator string, line, total, cols int) string {
	s := fmt.Sprintf("%s | line %d/%d", mode, line, total)
	if indicator != "" {
		s = s + " | " + indicator
	}
	w := runewidth.StringWidth(s)
	if w > cols {
		return runewidth.Truncate(s, cols, "")
	}
	return s + spaces(cols-w)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// DrawStatusBar writes the status line at the terminal's last row, column
// 0, using plain text (no image placement — sidebar and status text are
// real terminal characters, not rasterized glyphs).
func (f *Frame) DrawStatusBar(w io.Writer, text string, row int) error {
	_, err := fmt.Fprint(w, moveCursor(row, 0), text)
	return err
}
