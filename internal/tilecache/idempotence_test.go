package tilecache

import (
	"bytes"
	"context"
	"testing"

	"github.com/prosepane/prosepane/internal/doc"
	"github.com/prosepane/prosepane/internal/typeset/typesettest"
)

func TestRenderTile_IsByteIdenticalAcrossCalls(t *testing.T) {
	r := typesettest.Renderer{}
	tile := &doc.Tile{Index: 3, YStartPt: 300, YEndPt: 400, HeightPt: 100, SubFrame: &doc.Frame{WidthPt: 400, HeightPt: 100}}

	a, err := r.RenderTile(context.Background(), tile, 144)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.RenderTile(context.Background(), tile, 144)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("expected byte-identical PNGs for re-rendering the same tile")
	}
}
