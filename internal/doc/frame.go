// Package doc holds the data model that flows through the rendering
// pipeline: the frame tree consumed from the external compiler, tiles,
// visual lines, and the source map. None of the types here perform layout
// or rendering themselves; they are the shared vocabulary between the
// splitter, the visual-line extractor, the source-map resolver and the
// tile cache.
package doc

// Span is a byte range into some source text, half-open like the rest of
// the pipeline's ranges ([Start, End)).
type Span struct {
	Start int
	End   int
}

// Len reports the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Valid reports whether the span is well formed and non-negative.
func (s Span) Valid() bool { return s.Start >= 0 && s.End >= s.Start }

// Pt is a point-space (typesetting unit) coordinate pair.
type Pt struct {
	X float64
	Y float64
}

// Kind discriminates frame items. The compiler only ever produces these
// three leaf kinds plus group nodes; groups are flattened into Item.Children.
type Kind int

const (
	KindText Kind = iota
	KindShape
	KindImage
)

// GlyphAdvance is the horizontal advance of a single shaped glyph, paired
// with the glyph's back-reference into the markup source. A text run with
// N runes has N advances (or fewer, if the shaper merged ligatures). The
// extractor reads only the first advance's span, and falls back to the
// run's own Span when Advances is empty.
type GlyphAdvance struct {
	Advance float64
	Span    Span
}

// TextRun is a KindText leaf: shaped text with a font, size, and
// per-glyph source spans.
type TextRun struct {
	Font     string
	SizePt   float64
	Text     string
	Advances []GlyphAdvance
	// Span is the run's own back-reference, used when Advances is empty
	// (e.g. zero-width runs) or as the run-level fallback.
	Span Span
	// Detached is true for runs the compiler could not trace back to any
	// markup byte range (typically theme-injected text).
	Detached bool
}

// Item is one node of the frame tree. Exactly one of TextRun/Children is
// meaningful depending on Kind: KindText leaves carry Run, KindShape and
// KindImage leaves carry no further data (they still occupy space and
// participate in tiling, but the extractor ignores them), and group nodes
// (Kind is irrelevant) carry Children plus an offset applied to all of
// them.
type Item struct {
	Kind     Kind
	Offset   Pt // affine offset applied to Children, and to Run's baseline for a leaf
	Run      *TextRun
	Children []*Item
	// HeightPt/WidthPt bound the item's own box, used by shapes/images
	// that have no text run to measure.
	HeightPt float64
	WidthPt  float64
}

// Frame is the compiled page: one auto-grown page, as required by
// "assumes one auto-grown page" non-goal. Items are in source
// order at the top level.
type Frame struct {
	WidthPt  float64
	HeightPt float64
	Items    []*Item
}

// AbsoluteTop returns the item's absolute top-Y, given the accumulated
// parent offset. The splitter and extractor both need this repeatedly
// while walking, so it lives on Item rather than being recomputed ad hoc.
func (it *Item) AbsoluteTop(parentY float64) float64 {
	return parentY + it.Offset.Y
}
