package srcmap

import (
	"testing"

	"github.com/prosepane/prosepane/internal/doc"
)

// TestResolve_HelloWorld: "# Hello\n\nworld\n" should resolve line 1 to
// (1,1) and line 2 to (3,3).
func TestResolve_HelloWorld(t *testing.T) {
	markdown := "# Hello\n\nworld\n"
	markup := "#heading[Hello]\n#parbreak()\nworld"
	prefix := 0
	sm := doc.SourceMap{Mappings: []doc.BlockMapping{
		{TypstByteRange: doc.Span{Start: 0, End: 16}, MDByteRange: doc.Span{Start: 0, End: 7}},  // "# Hello"
		{TypstByteRange: doc.Span{Start: 17, End: 35}, MDByteRange: doc.Span{Start: 9, End: 14}}, // "world"
	}}
	r := New(sm, markup, markdown, prefix)

	line1 := &doc.VisualLine{}
	r.Resolve(line1, doc.Span{Start: 10, End: 15}) // inside "Hello"
	if !line1.HasMDLineRange || line1.MDLineRange != (doc.LineRange{Start: 1, End: 1}) {
		t.Fatalf("line1 range = %+v, ok=%v", line1.MDLineRange, line1.HasMDLineRange)
	}

	line2 := &doc.VisualLine{}
	r.Resolve(line2, doc.Span{Start: 20, End: 25}) // inside "world"
	if !line2.HasMDLineRange || line2.MDLineRange != (doc.LineRange{Start: 3, End: 3}) {
		t.Fatalf("line2 range = %+v, ok=%v", line2.MDLineRange, line2.HasMDLineRange)
	}
}

// TestResolve_FencedCodeBlock: a fenced code block with lines a/b/c on
// source lines 2-4 (fences on 1 and 5) should resolve md_line_exact to
// 2, 3, 4 for each code line.
func TestResolve_FencedCodeBlock(t *testing.T) {
	markdown := "```\na\nb\nc\n```\n"
	// markup mirrors one newline per markdown line inside the fenced block.
	markup := "#raw-block[a\nb\nc]"
	sm := doc.SourceMap{Mappings: []doc.BlockMapping{
		{TypstByteRange: doc.Span{Start: 0, End: len(markup)}, MDByteRange: doc.Span{Start: 0, End: len(markdown) - 1}},
	}}
	r := New(sm, markup, markdown, 0)

	cases := []struct {
		glyphOffset int
		want        int
	}{
		{11, 2}, // 'a' right after "#raw-block["
		{13, 3}, // 'b'
		{15, 4}, // 'c'
	}
	for _, c := range cases {
		vl := &doc.VisualLine{}
		r.Resolve(vl, doc.Span{Start: c.glyphOffset, End: c.glyphOffset + 1})
		if !vl.HasMDLineExact || vl.MDLineExact != c.want {
			t.Fatalf("glyph offset %d: exact=%v ok=%v, want %d", c.glyphOffset, vl.MDLineExact, vl.HasMDLineExact, c.want)
		}
	}
}

func TestResolve_OutOfRangeOffsetYieldsNone(t *testing.T) {
	r := New(doc.SourceMap{}, "markup", "markdown", 100)
	vl := &doc.VisualLine{}
	r.Resolve(vl, doc.Span{Start: 5, End: 6})
	if vl.HasMDLineRange {
		t.Fatal("expected no range for an offset before the prefix")
	}
}

func TestResolve_TableFallsBackToBlockLevel(t *testing.T) {
	// Table translations don't preserve line-count equality ;
	// the newline-equality guard must degrade to block-level yank, i.e.
	// MDLineRange set but MDLineExact absent.
	markdown := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	markup := "#table(columns: 2)[a][b][1][2]" // no newlines at all inside the block
	sm := doc.SourceMap{Mappings: []doc.BlockMapping{
		{TypstByteRange: doc.Span{Start: 0, End: len(markup)}, MDByteRange: doc.Span{Start: 0, End: len(markdown) - 1}},
	}}
	r := New(sm, markup, markdown, 0)
	vl := &doc.VisualLine{}
	r.Resolve(vl, doc.Span{Start: 10, End: 11})
	if !vl.HasMDLineRange {
		t.Fatal("expected a block-level line range")
	}
	if vl.HasMDLineExact {
		t.Fatal("expected no exact line for a table block (newline counts mismatch)")
	}
}

func TestResolve_SortsUnsortedSourceMapDefensively(t *testing.T) {
	sm := doc.SourceMap{Mappings: []doc.BlockMapping{
		{TypstByteRange: doc.Span{Start: 20, End: 30}, MDByteRange: doc.Span{Start: 20, End: 30}},
		{TypstByteRange: doc.Span{Start: 0, End: 10}, MDByteRange: doc.Span{Start: 0, End: 10}},
	}}
	r := New(sm, string(make([]byte, 30)), string(make([]byte, 30)), 0)
	if r.SourceMap.Mappings[0].TypstByteRange.Start != 0 {
		t.Fatal("expected mappings sorted by TypstByteRange.Start")
	}
}
