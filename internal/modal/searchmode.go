package modal

func handleSearch(state State, key Key, ctx Context) ([]Effect, State) {
	switch {
	case key.IsName(KeyEsc), key.IsName(KeyCtrlC):
		next := state
		next.Mode = ModeNormal
		next.SearchQuery = ""
		next.SearchHits = nil
		next.SearchCursor = 0
		return []Effect{setMode(ModeNormal)}, next

	case key.IsName(KeyEnter):
		next := state
		next.Mode = ModeNormal
		next.LastSearch = state.SearchQuery
		next.SearchQuery = ""
		hits, cursor := next.SearchHits, next.SearchCursor
		next.SearchHits = nil
		next.SearchCursor = 0
		if len(hits) == 0 {
			return []Effect{flash("no matches"), setMode(ModeNormal)}, next
		}
		return []Effect{scrollToLine(hits[cursor]), setMode(ModeNormal)}, next

	case key.IsName(KeyBksp):
		next := state
		if len(next.SearchQuery) > 0 {
			r := []rune(next.SearchQuery)
			next.SearchQuery = string(r[:len(r)-1])
		}
		return rematch(next, ctx)

	case key.Is('j'), key.IsName(KeyDown):
		next := state
		if len(next.SearchHits) == 0 {
			return nil, next
		}
		next.SearchCursor = (next.SearchCursor + 1) % len(next.SearchHits)
		return []Effect{scrollToLine(next.SearchHits[next.SearchCursor])}, next

	case key.Is('k'), key.IsName(KeyUp):
		next := state
		if len(next.SearchHits) == 0 {
			return nil, next
		}
		next.SearchCursor = (next.SearchCursor - 1 + len(next.SearchHits)) % len(next.SearchHits)
		return []Effect{scrollToLine(next.SearchHits[next.SearchCursor])}, next

	case key.Rune != 0:
		next := state
		next.SearchQuery += string(key.Rune)
		return rematch(next, ctx)

	default:
		return nil, state
	}
}

// rematch recomputes the hit list for state's current query, snaps the
// cursor back to the first hit, and scrolls there as a live preview.
func rematch(state State, ctx Context) ([]Effect, State) {
	state.SearchHits = matchLines(ctx.MarkdownLines(), state.SearchQuery)
	state.SearchCursor = 0
	if len(state.SearchHits) == 0 {
		return nil, state
	}
	return []Effect{scrollToLine(state.SearchHits[0])}, state
}
