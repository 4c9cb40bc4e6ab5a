// Package visualline implements the visual-line extractor: it recursively
// walks the frame tree, groups text runs sharing a quantised Y into one
// visual line, and returns the ordered, deduplicated list the rest of the
// pipeline is built on.
package visualline

import (
	"math"
	"sort"

	"github.com/prosepane/prosepane/internal/doc"
)

// QuantizeGrid is the sub-pt grid runs are rounded to before grouping.
// Runs whose Y rounds to the same multiple of this grid share a visual
// line.
const QuantizeGrid = 0.5

// Extract walks the frame and returns the ordered visual-line list. pxPerPt
// converts point-space Y to pixel-space Y for the caller's viewport math
// (VisualLine carries both y_pt and y_px).
func Extract(frame *doc.Frame, pxPerPt float64) []*doc.VisualLine {
	groups := map[float64]*doc.VisualLine{}
	var order []float64

	var walk func(items []*doc.Item, parentY float64)
	walk = func(items []*doc.Item, parentY float64) {
		for _, it := range items {
			absY := it.AbsoluteTop(parentY)
			if it.Run != nil {
				q := quantize(absY)
				vl, ok := groups[q]
				if !ok {
					vl = &doc.VisualLine{YPt: q, YPx: q * pxPerPt}
					groups[q] = vl
					order = append(order, q)
				}
				vl.Runs = append(vl.Runs, it.Run)
			}
			if len(it.Children) > 0 {
				walk(it.Children, absY)
			}
		}
	}
	walk(frame.Items, 0)

	sort.Float64s(order)
	lines := make([]*doc.VisualLine, 0, len(order))
	for _, q := range order {
		lines = append(lines, groups[q])
	}
	return lines
}

func quantize(y float64) float64 {
	return math.Round(y/QuantizeGrid) * QuantizeGrid
}

// LeadingSpan returns the first non-detached span among the visual line's
// runs, used by the source-map resolver (the "records the first
// non-detached source span found among its runs" rule). The second return
// value is false when every run on the line is detached.
func LeadingSpan(vl *doc.VisualLine) (doc.Span, bool) {
	for _, run := range vl.Runs {
		if run.Detached {
			continue
		}
		if span, ok := leadingRunSpan(run); ok {
			return span, true
		}
	}
	return doc.Span{}, false
}

func leadingRunSpan(run *doc.TextRun) (doc.Span, bool) {
	if len(run.Advances) > 0 {
		return run.Advances[0].Span, run.Advances[0].Span.Valid()
	}
	return run.Span, run.Span.Valid()
}
