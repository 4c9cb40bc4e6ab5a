package session

import (
	"strings"

	"github.com/prosepane/prosepane/internal/doc"
	"github.com/prosepane/prosepane/internal/layout"
	"github.com/prosepane/prosepane/internal/modal"
)

// buildModalContext wires a Build and the current viewport into the
// read-only Context the modal engine's pure handlers consume.
func buildModalContext(b *Build, v *layout.Viewport, scrollStep, halfPageRows int) modal.Context {
	mdLines := strings.Split(b.Markdown, "\n")
	return modal.Context{
		TotalLines:   len(b.Lines),
		CurrentLine:  v.CurrentLineIndex(b.Lines),
		ScrollStep:   scrollStep,
		HalfPageRows: halfPageRows,
		LineExact: func(n int) (int, bool) {
			vl := visualLineAt(b.Lines, n)
			if vl == nil || !vl.HasMDLineExact {
				return 0, false
			}
			return vl.MDLineExact, true
		},
		LineRange: func(n int) (int, int) {
			vl := visualLineAt(b.Lines, n)
			if vl == nil || !vl.HasMDLineRange {
				return n, n
			}
			return vl.MDLineRange.Start, vl.MDLineRange.End
		},
		LineText: func(start, end int) string {
			if start < 1 {
				start = 1
			}
			if end > len(mdLines) {
				end = len(mdLines)
			}
			if end < start {
				return ""
			}
			return strings.Join(mdLines[start-1:end], "\n")
		},
		URLsOnLine: func(n int) []string {
			if n < 1 || n > len(mdLines) {
				return nil
			}
			return modal.URLsInLine(mdLines[n-1])
		},
		MarkdownLines: func() []string { return mdLines },
	}
}

func visualLineAt(lines []*doc.VisualLine, n int) *doc.VisualLine {
	if n < 1 || n > len(lines) {
		return nil
	}
	return lines[n-1]
}
