// Package srcmap implements the source-map resolver : it
// maps a visual line's leading glyph span back to a Markdown line range
// and, where safe, an exact line.
package srcmap

import (
	"sort"
	"strings"

	"github.com/prosepane/prosepane/internal/doc"
)

// Resolver resolves visual lines against one document build's source map,
// markup text and original Markdown text. It is stateless apart from its
// inputs and safe to call concurrently — the pipeline only ever calls it
// from the main thread while building the visual-line list, but nothing
// here assumes that.
type Resolver struct {
	SourceMap  doc.SourceMap
	Markup     string
	Markdown   string
	PrefixLen  int
}

// New returns a Resolver, sorting the source map defensively (the
// translator contract requires it sorted already, but resolving is cheap
// insurance against a future contract violation never being caught here).
func New(sm doc.SourceMap, markup, markdown string, prefixLen int) *Resolver {
	mappings := append([]doc.BlockMapping(nil), sm.Mappings...)
	sort.Slice(mappings, func(i, j int) bool {
		return mappings[i].TypstByteRange.Start < mappings[j].TypstByteRange.Start
	})
	return &Resolver{SourceMap: doc.SourceMap{Mappings: mappings}, Markup: markup, Markdown: markdown, PrefixLen: prefixLen}
}

// Resolve fills in vl.MDLineRange/MDLineExact in place, following a
// six-step algorithm: subtract the prefix length, binary-search the
// source map, compute the line range from newline counts, resolve the
// exact line, then drop the exact line if it falls outside that range.
func (r *Resolver) Resolve(vl *doc.VisualLine, leadingSpan doc.Span) {
	// Step 2: subtract prefix length.
	offset := leadingSpan.Start - r.PrefixLen
	if offset < 0 || offset > len(r.Markup) {
		return
	}

	// Step 3: binary-search the source map.
	mapping, ok := r.findMapping(offset)
	if !ok {
		return
	}

	// Step 4: compute md_line_range from newline counts.
	start := lineNumber(r.Markdown, mapping.MDByteRange.Start)
	end := lineNumber(r.Markdown, maxInt(mapping.MDByteRange.Start, mapping.MDByteRange.End-1))
	if start > end {
		return
	}
	vl.MDLineRange = doc.LineRange{Start: start, End: end}
	vl.HasMDLineRange = true

	// Step 5: compute md_line_exact.
	exact, ok := r.resolveExact(mapping, offset, vl.MDLineRange)
	if !ok {
		return
	}
	// Step 6: clamp/guard.
	if !vl.MDLineRange.Contains(exact) {
		return
	}
	vl.MDLineExact = exact
	vl.HasMDLineExact = true
}

// findMapping binary-searches the sorted, non-overlapping mapping list for
// the entry whose TypstByteRange covers offset.
func (r *Resolver) findMapping(offset int) (doc.BlockMapping, bool) {
	mappings := r.SourceMap.Mappings
	i := sort.Search(len(mappings), func(i int) bool {
		return mappings[i].TypstByteRange.End > offset
	})
	if i >= len(mappings) {
		return doc.BlockMapping{}, false
	}
	m := mappings[i]
	if offset < m.TypstByteRange.Start || offset >= m.TypstByteRange.End {
		return doc.BlockMapping{}, false
	}
	return m, true
}

// resolveExact computes the exact Markdown line a typeset byte offset
// falls on.
func (r *Resolver) resolveExact(m doc.BlockMapping, offset int, lineRange doc.LineRange) (int, bool) {
	blockMarkdown := sliceSafe(r.Markdown, m.MDByteRange.Start, m.MDByteRange.End)
	if isFencedCodeBlock(blockMarkdown) {
		blockMarkup := sliceSafe(r.Markup, m.TypstByteRange.Start, m.TypstByteRange.End)
		glyphOffsetInBlock := offset - m.TypstByteRange.Start
		count := countNewlines(blockMarkup, glyphOffsetInBlock)
		exact := lineRange.Start + 1 + count
		if exact > lineRange.End-1 {
			exact = lineRange.End - 1
		}
		return exact, true
	}

	blockMarkup := sliceSafe(r.Markup, m.TypstByteRange.Start, m.TypstByteRange.End)
	glyphOffsetInBlock := offset - m.TypstByteRange.Start
	countBefore := countNewlines(blockMarkup, glyphOffsetInBlock)
	trimmedMarkup := strings.TrimSuffix(blockMarkup, "\n")
	countAfter := countNewlines(trimmedMarkup, len(trimmedMarkup)) - countBefore

	trimmedMD := strings.TrimSuffix(blockMarkdown, "\n")
	countBeforeMD := countNewlines(trimmedMD, len(trimmedMD))
	// Newlines on both sides of the markup block must equal the total
	// newlines in the corresponding Markdown block for line correspondence
	// to hold; otherwise the translator reshaped line breaks and an exact
	// line can't be trusted. A single trailing newline on either block is
	// ignored, so a mapping that covers one line plus its terminator still
	// counts as a one-line block.
	if countBefore+countAfter != countBeforeMD {
		return 0, false
	}
	return lineRange.Start + countBefore, true
}

func isFencedCodeBlock(block string) bool {
	trimmed := strings.TrimLeft(block, " \t")
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

func countNewlines(s string, upTo int) int {
	if upTo > len(s) {
		upTo = len(s)
	}
	if upTo < 0 {
		upTo = 0
	}
	return strings.Count(s[:upTo], "\n")
}

// lineNumber returns the 1-based line number containing byte offset pos.
func lineNumber(s string, pos int) int {
	if pos > len(s) {
		pos = len(s)
	}
	if pos < 0 {
		pos = 0
	}
	return 1 + strings.Count(s[:pos], "\n")
}

func sliceSafe(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if end < start {
		return ""
	}
	return s[start:end]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
