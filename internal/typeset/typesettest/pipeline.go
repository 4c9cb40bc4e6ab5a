package typesettest

import (
	"context"
	"strings"

	"github.com/prosepane/prosepane/internal/doc"
)

// Translator is a minimal fake: it treats every non-blank paragraph
// separated by a blank line as one top-level block, emitting one block
// mapping per block with an identity-ish markup (just the block text,
// joined with a one-byte separator) so tests can exercise the
// source-mapping chain end to end without a real Markdown parser.
type Translator struct{}

func (Translator) Translate(ctx context.Context, markdown string) (string, doc.SourceMap, error) {
	blocks := splitBlocks(markdown)
	var markup strings.Builder
	var sm doc.SourceMap
	for _, b := range blocks {
		start := markup.Len()
		markup.WriteString(b.text)
		sm.Mappings = append(sm.Mappings, doc.BlockMapping{
			TypstByteRange: doc.Span{Start: start, End: markup.Len()},
			MDByteRange:    doc.Span{Start: b.mdStart, End: b.mdEnd},
		})
		markup.WriteByte('\n')
	}
	return markup.String(), sm, nil
}

type block struct {
	text             string
	mdStart, mdEnd int
}

func splitBlocks(markdown string) []block {
	var blocks []block
	pos := 0
	for pos < len(markdown) {
		// skip blank lines
		for pos < len(markdown) && markdown[pos] == '\n' {
			pos++
		}
		if pos >= len(markdown) {
			break
		}
		start := pos
		end := strings.Index(markdown[pos:], "\n\n")
		if end == -1 {
			pos = len(markdown)
		} else {
			pos = start + end
		}
		text := strings.TrimRight(markdown[start:pos], "\n")
		blocks = append(blocks, block{text: text, mdStart: start, mdEnd: start + len(text)})
	}
	return blocks
}

// Compiler is a fake that lays out each non-empty line of the main source
// (theme prelude and width line included) as one text run, LineHeightPt
// (default 20pt) apart, with an empty line advancing Y without a run, at
// a fixed page width — just enough
// structure for the splitter/extractor/resolver chain to exercise real
// coordinates without a real typesetting engine.
type Compiler struct {
	LineHeightPt float64
	PageWidthPt  float64
}

func (c Compiler) Compile(ctx context.Context, mainSource string) (*doc.Frame, error) {
	lineHeight := c.LineHeightPt
	if lineHeight == 0 {
		lineHeight = 20
	}
	width := c.PageWidthPt
	if width == 0 {
		width = 400
	}

	lines := strings.Split(mainSource, "\n")
	items := make([]*doc.Item, 0, len(lines))
	y := 0.0
	for _, line := range lines {
		if line == "" {
			y += lineHeight
			continue
		}
		start := strings.Index(mainSource, line)
		span := doc.Span{Start: start, End: start + len(line)}
		items = append(items, &doc.Item{
			Kind:   doc.KindText,
			Offset: doc.Pt{Y: y},
			Run:    &doc.TextRun{Text: line, Span: span, Advances: []doc.GlyphAdvance{{Span: span}}},
		})
		y += lineHeight
	}
	return &doc.Frame{WidthPt: width, HeightPt: y, Items: items}, nil
}
