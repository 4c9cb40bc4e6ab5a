// Package typeset defines the contracts for the system's external
// collaborators: the Markdown-to-markup translator, the typesetter
// compiler and renderer, and the PNG encoder. None of these are
// implemented here — but the rest of the pipeline is built against
// these interfaces so a real translator/compiler binding can be wired
// in without touching any other package.
package typeset

import (
	"context"

	"github.com/prosepane/prosepane/internal/doc"
)

// Translator turns Markdown into typesetter markup plus a source map.
// Contract: for every top-level Markdown block, the source map must
// contain exactly one mapping whose MDByteRange covers that block's
// input bytes and whose TypstByteRange covers the translator's emitted
// bytes for it; mappings are sorted and non-overlapping on
// TypstByteRange; nested blocks and in-list leaf rules get no mapping of
// their own.
type Translator interface {
	Translate(ctx context.Context, markdown string) (markup string, sourceMap doc.SourceMap, err error)
}

// Compiler compiles the full main source (theme prelude + width override +
// translated content) into a frame tree. PrefixLen is the byte offset at
// which the translated content begins within MainSource, computed
// deterministically from the three concatenated pieces.
type Compiler interface {
	Compile(ctx context.Context, mainSource string) (*doc.Frame, error)
}

// Renderer rasterizes a frame (or sub-frame, i.e. one tile) at the given
// pixels-per-inch. Output is whatever the PNGEncoder can losslessly
// encode.
type Renderer interface {
	Render(ctx context.Context, frame *doc.Frame, ppi float64) (Pixmap, error)
}

// Pixmap is an opaque rasterized image handle; PNGEncoder is the only
// thing that needs to know its internal representation.
type Pixmap interface {
	Bounds() (widthPx, heightPx int)
}

// PNGEncoder losslessly encodes a Pixmap to PNG bytes.
type PNGEncoder interface {
	Encode(Pixmap) ([]byte, error)
}

// Diagnostic is a translation or compile error surfaced on a placeholder
// page. ByteOffset is -1 when the failure has no precise location.
type Diagnostic struct {
	Message    string
	ByteOffset int
}

func (d Diagnostic) Error() string { return d.Message }

// PrefixLen computes the offset at which translated content begins
// inside the concatenated main source (theme prelude + page-width
// override line + translated markup).
func PrefixLen(themePrelude, widthOverrideLine string) int {
	return len(themePrelude) + len(widthOverrideLine)
}

// BuildMainSource concatenates the three pieces of the main source in
// order: theme prelude, page-width override, translated content.
func BuildMainSource(themePrelude, widthOverrideLine, translatedMarkup string) string {
	return themePrelude + widthOverrideLine + translatedMarkup
}
