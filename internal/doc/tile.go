package doc

// Tile is one vertical slice of the page frame: a contiguous, half-open Y
// range and the sub-frame of items whose absolute Y falls in that range.
// See the "Tile" rule for the partition invariant this type must satisfy
// — enforced by internal/splitter, not by Tile itself.
type Tile struct {
	Index      int
	YStartPt   float64
	YEndPt     float64
	HeightPt   float64
	SubFrame   *Frame // items re-offset so the tile's own Y=0 is YStartPt
}

// VisualLine is the UI's line unit: a Y-grouped cluster of text runs, with
// the (optional) Markdown byte-line range and exact line it resolves to.
// Built by internal/visualline and refined in place by internal/srcmap.
type VisualLine struct {
	YPt   float64
	YPx   float64
	Runs  []*TextRun

	MDLineRange      LineRange
	HasMDLineRange   bool
	MDLineExact      int
	HasMDLineExact   bool
}

// LineRange is a 1-based inclusive Markdown line range.
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether line n falls within the range, inclusive.
func (r LineRange) Contains(n int) bool { return n >= r.Start && n <= r.End }

// BlockMapping is one entry of the source map produced by the external
// translator: a correspondence between a byte range in the translated
// markup and a byte range in the original Markdown.
type BlockMapping struct {
	TypstByteRange Span
	MDByteRange    Span
}

// SourceMap is the ordered, non-overlapping (on TypstByteRange) list of
// block mappings the translator produces.
type SourceMap struct {
	Mappings []BlockMapping
}

// TilePNGPair is the pair of PNGs rendered from one tile: the document
// content and the sidebar line-number strip over the same Y-range.
type TilePNGPair struct {
	Content []byte
	Sidebar []byte
}
