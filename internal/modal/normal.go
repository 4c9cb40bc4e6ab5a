package modal

func handleNormal(state State, key Key, ctx Context) ([]Effect, State) {
	if d, ok := key.IsDigit(); ok {
		return nil, state.pushDigit(d)
	}

	switch {
	case key.IsName(KeyCtrlC), key.Is('q'):
		return []Effect{effectQuit}, New()

	case key.Is('j'), key.IsName(KeyDown):
		n, next := state.takePrefix(1)
		return []Effect{scrollBy(n * stepOr1(ctx.ScrollStep))}, next

	case key.Is('k'), key.IsName(KeyUp):
		n, next := state.takePrefix(1)
		return []Effect{scrollBy(-n * stepOr1(ctx.ScrollStep))}, next

	case key.Is('d'):
		n, next := state.takePrefix(1)
		return []Effect{scrollBy(n * stepOr1(ctx.HalfPageRows))}, next

	case key.Is('u'):
		n, next := state.takePrefix(1)
		return []Effect{scrollBy(-n * stepOr1(ctx.HalfPageRows))}, next

	case key.Is('g'):
		if state.HasPrefix {
			n, next := state.takePrefix(1)
			return []Effect{scrollToLine(n)}, next
		}
		return []Effect{effectScrollToTop}, state

	case key.Is('G'):
		if state.HasPrefix {
			n, next := state.takePrefix(1)
			return []Effect{scrollToLine(n)}, next
		}
		return []Effect{effectScrollToBottom}, state

	case key.Is('y'):
		if !state.HasPrefix {
			return []Effect{flash("y: prefix a line number, e.g. 12y")}, state
		}
		n, next := state.takePrefix(ctx.CurrentLine)
		return []Effect{yank(yankLine(ctx, n))}, next

	case key.Is('Y'):
		if !state.HasPrefix {
			return []Effect{flash("Y: prefix a line number, e.g. 12Y")}, state
		}
		n, next := state.takePrefix(ctx.CurrentLine)
		return []Effect{yank(yankBlock(ctx, n))}, next

	case key.Is('O'):
		return openURLsOnLine(ctx, ctx.CurrentLine, state)

	case key.Is('o'):
		if !state.HasPrefix {
			return []Effect{flash("o: prefix a line number, e.g. 12o")}, state
		}
		n, next := state.takePrefix(ctx.CurrentLine)
		return openURLsOnLine(ctx, n, next)

	case key.Is('n'), key.Is('N'):
		if state.LastSearch == "" {
			return []Effect{flash("no previous search")}, state
		}
		hits := matchLines(ctx.MarkdownLines(), state.LastSearch)
		line, ok := nextMatch(hits, ctx.CurrentLine, key.Is('N'))
		if !ok {
			return []Effect{flash("no matches")}, state
		}
		return []Effect{scrollToLine(line)}, state

	case key.Is('/'):
		next := state
		next.Mode = ModeSearch
		next.SearchQuery = ""
		next.SearchHits = nil
		next.SearchCursor = 0
		return []Effect{setMode(ModeSearch)}, next

	case key.Is(':'):
		next := state
		next.Mode = ModeCommand
		next.CommandLine = ""
		return []Effect{setMode(ModeCommand)}, next

	default:
		return nil, state
	}
}

func stepOr1(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// yankLine returns the single Markdown line's text when the source map
// pinned one exactly, falling back to the whole mapped block otherwise —
// the "single line if md_line_exact is set, else block" rule.
func yankLine(ctx Context, n int) string {
	if exact, ok := ctx.lineExact(n); ok {
		return ctx.lineText(exact, exact)
	}
	return yankBlock(ctx, n)
}

func yankBlock(ctx Context, n int) string {
	start, end := ctx.lineRange(n)
	return ctx.lineText(start, end)
}

func openURLsOnLine(ctx Context, n int, state State) ([]Effect, State) {
	urls := ctx.urlsOnLine(n)
	switch len(urls) {
	case 0:
		return []Effect{flash("no links on this line")}, state
	case 1:
		return []Effect{openURL(urls[0])}, state
	default:
		next := state
		next.Mode = ModeURLPicker
		next.URLs = urls
		next.URLSelected = 0
		return []Effect{setMode(ModeURLPicker)}, next
	}
}
