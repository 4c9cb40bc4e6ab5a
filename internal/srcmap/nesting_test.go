package srcmap

import (
	"strings"
	"testing"

	"github.com/prosepane/prosepane/internal/doc"
)

// TestResolve_CappedBlockquoteNesting covers a translator that capped a
// 12-level-deep blockquote at depth 10: it still produces one flat block
// mapping, and the resolver must not misbehave on it — it resolves like
// any other single-block mapping, with no special-casing required on
// this side of the contract.
func TestResolve_CappedBlockquoteNesting(t *testing.T) {
	const deepQuote = "> > > > > > > > > > > > deep\n"
	markdown := deepQuote
	// The capped translator output: ten nested quote wrappers around the
	// inlined remainder, all from a single block mapping (no wrapper
	// after the cap).
	markup := strings.Repeat("#quote[", 10) + "deep" + strings.Repeat("]", 10)
	sm := doc.SourceMap{Mappings: []doc.BlockMapping{
		{TypstByteRange: doc.Span{Start: 0, End: len(markup)}, MDByteRange: doc.Span{Start: 0, End: len(markdown) - 1}},
	}}
	r := New(sm, markup, markdown, 0)

	vl := &doc.VisualLine{}
	r.Resolve(vl, doc.Span{Start: 70, End: 74}) // offset inside "deep"
	if !vl.HasMDLineRange || vl.MDLineRange != (doc.LineRange{Start: 1, End: 1}) {
		t.Fatalf("expected single-line range for the capped quote, got %+v ok=%v", vl.MDLineRange, vl.HasMDLineRange)
	}
}
