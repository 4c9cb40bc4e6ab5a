package modal

// Context is the read-only view of the current document build a handler
// needs to resolve line-relative commands. It is rebuilt by the owning
// loop whenever the document is rebuilt; handlers never mutate it.
type Context struct {
	TotalLines   int
	CurrentLine  int // 1-based visual line nearest the viewport top
	ScrollStep   int // cells per unprefixed j/k, from viewer.scroll_step
	HalfPageRows int // cells per unprefixed d/u

	// LineExact returns the exact Markdown line number for visual line n,
	// when the source map pinned one to it.
	LineExact func(n int) (int, bool)

	// LineRange returns the Markdown line range (1-based inclusive) for
	// visual line n.
	LineRange func(n int) (start, end int)

	// LineText returns the literal Markdown text for a 1-based line range.
	LineText func(start, end int) string

	// URLsOnLine returns the deduplicated URLs discovered on Markdown line
	// n, for the URL picker.
	URLsOnLine func(n int) []string

	// MarkdownLines returns the document's raw lines for Search mode.
	MarkdownLines func() []string
}

func (c Context) lineExact(n int) (int, bool) {
	if c.LineExact == nil {
		return 0, false
	}
	return c.LineExact(n)
}

func (c Context) lineRange(n int) (int, int) {
	if c.LineRange == nil {
		return n, n
	}
	return c.LineRange(n)
}

func (c Context) lineText(start, end int) string {
	if c.LineText == nil {
		return ""
	}
	return c.LineText(start, end)
}

func (c Context) urlsOnLine(n int) []string {
	if c.URLsOnLine == nil {
		return nil
	}
	return c.URLsOnLine(n)
}
