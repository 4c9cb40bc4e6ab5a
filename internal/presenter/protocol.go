package presenter

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/prosepane/prosepane/internal/layout"
)

// chunkSize is the maximum payload per image-transfer command.
const chunkSize = 4096

// ImageDriver uploads and places images via a four-capability inline
// image protocol: transfer-once-by-id, place-with-crop,
// erase-placement-keep-data, suppress-responses. Every emitted command
// carries the quiet flag so the terminal never echoes anything back into
// the input stream the modal engine reads.
type ImageDriver struct {
	w        io.Writer
	uploaded map[uint32]bool
}

// NewImageDriver wraps the writer the terminal commands are sent on.
func NewImageDriver(w io.Writer) *ImageDriver {
	return &ImageDriver{w: w, uploaded: make(map[uint32]bool)}
}

// ContentID and SidebarID implement the id namespace: 1000+tile_index
// for content, 2000+tile_index for sidebar.
func ContentID(tileIndex int) uint32 { return 1000 + uint32(tileIndex) }
func SidebarID(tileIndex int) uint32 { return 2000 + uint32(tileIndex) }

// Transfer uploads png under id, idempotently: a repeat call with an id
// already uploaded this build is a no-op, matching "ensure the content and
// sidebar images are uploaded (idempotent by id)".
func (d *ImageDriver) Transfer(id uint32, png []byte) error {
	if d.uploaded[id] {
		return nil
	}
	encoded := base64.StdEncoding.EncodeToString(png)
	for i := 0; i < len(encoded); i += chunkSize {
		end := i + chunkSize
		more := 1
		if end >= len(encoded) {
			end = len(encoded)
			more = 0
		}
		first := i == 0
		if _, err := fmt.Fprintf(d.w, "\x1b_G%s,m=%d,q=2;%s\x1b\\", transferControlData(id, first), more, encoded[i:end]); err != nil {
			return fmt.Errorf("presenter: transfer image %d: %w", id, err)
		}
	}
	d.uploaded[id] = true
	return nil
}

func transferControlData(id uint32, first bool) string {
	if first {
		return fmt.Sprintf("a=t,f=100,i=%d", id)
	}
	return fmt.Sprintf("i=%d", id)
}

// Place moves the cursor to (row, col) — both 0-based cell coordinates —
// and places id cropped to crop, occupying cols x rows cells.
func (d *ImageDriver) Place(id uint32, row, col int, crop layout.CropRect, cols, rows int) error {
	_, err := fmt.Fprintf(d.w, "%s\x1b_Ga=p,i=%d,x=%d,y=%d,w=%d,h=%d,c=%d,r=%d,q=2;\x1b\\",
		moveCursor(row, col), id, crop.X, crop.Y, crop.W, crop.H, cols, rows)
	if err != nil {
		return fmt.Errorf("presenter: place image %d: %w", id, err)
	}
	return nil
}

// ErasePlacements erases id's current placement without discarding the
// stored image data — the "Between frames, erase previous
// placements (data retained)" rule.
func (d *ImageDriver) ErasePlacements(id uint32) error {
	_, err := fmt.Fprintf(d.w, "\x1b_Ga=d,d=i,i=%d,q=2;\x1b\\", id)
	if err != nil {
		return fmt.Errorf("presenter: erase placement %d: %w", id, err)
	}
	return nil
}
