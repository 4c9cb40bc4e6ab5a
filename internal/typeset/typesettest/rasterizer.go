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
	"github.com/prosepane/prosepane/internal/typeset"
)

// Pixmap is the fixture typeset.Pixmap that PixelRenderer produces and
// PNGEncoder consumes.
type Pixmap struct {
	img *image.NRGBA
}

func (p Pixmap) Bounds() (widthPx, heightPx int) {
	b := p.img.Bounds()
	return b.Dx(), b.Dy()
}

// PixelRenderer implements typeset.Renderer with a fixture rasterizer: a
// flat canvas sized to the frame's WidthPt/HeightPt at the given ppi,
// with each text run's label drawn at its offset. It stands in for the
// real typesetter's rasterizer, which is out of scope here.
type PixelRenderer struct{}

func (PixelRenderer) Render(ctx context.Context, frame *doc.Frame, ppi float64) (typeset.Pixmap, error) {
	scale := ppi / 72
	w := int(frame.WidthPt * scale)
	if w <= 0 {
		w = 1
	}
	h := int(frame.HeightPt * scale)
	if h <= 0 {
		h = 1
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.RGBA{R: 250, G: 250, B: 245, A: 255}}, image.Point{}, draw.Src)

	drawer := &font.Drawer{Dst: canvas, Src: image.NewUniform(color.Black), Face: basicfont.Face7x13}
	for _, item := range frame.Items {
		if item.Run == nil {
			continue
		}
		x := int(item.Offset.X*scale) + 2
		y := int(item.Offset.Y*scale) + 12
		if x < 0 || x >= w || y < 12 || y > h {
			continue
		}
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(item.Run.Text)
	}

	// imaging.Clone routes the fixture raster through the ecosystem image
	// pipeline rather than stdlib draw alone, mirroring fb2cng's practice
	// of always routing raster output through imaging before encode.
	return Pixmap{img: imaging.Clone(canvas)}, nil
}

// PNGEncoder implements typeset.PNGEncoder by PNG-encoding a Pixmap
// produced by PixelRenderer. The two are meant to be paired: PNGEncoder
// rejects any typeset.Pixmap that didn't come from PixelRenderer.
type PNGEncoder struct{}

func (PNGEncoder) Encode(pix typeset.Pixmap) ([]byte, error) {
	p, ok := pix.(Pixmap)
	if !ok {
		return nil, fmt.Errorf("typesettest: encode: unsupported pixmap type %T", pix)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
