package modal

func handleURLPicker(state State, key Key, ctx Context) ([]Effect, State) {
	switch {
	case key.IsName(KeyEsc), key.IsName(KeyCtrlC):
		next := state
		next.Mode = ModeNormal
		next.URLs = nil
		return []Effect{setMode(ModeNormal)}, next

	case key.Is('j'), key.IsName(KeyDown):
		next := state
		if len(next.URLs) > 0 {
			next.URLSelected = (next.URLSelected + 1) % len(next.URLs)
		}
		return nil, next

	case key.Is('k'), key.IsName(KeyUp):
		next := state
		if len(next.URLs) > 0 {
			next.URLSelected = (next.URLSelected - 1 + len(next.URLs)) % len(next.URLs)
		}
		return nil, next

	case key.IsName(KeyEnter):
		next := state
		next.Mode = ModeNormal
		if next.URLSelected < 0 || next.URLSelected >= len(next.URLs) {
			next.URLs = nil
			return []Effect{setMode(ModeNormal)}, next
		}
		selected := next.URLs[next.URLSelected]
		next.URLs = nil
		return []Effect{openURL(selected), setMode(ModeNormal)}, next

	default:
		return nil, state
	}
}
