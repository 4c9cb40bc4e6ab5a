package modal

// Handle dispatches key to the handler for state.Mode and returns the
// effects it produced plus the next state. This is the engine's only
// entry point; callers never invoke a mode handler directly.
func Handle(state State, key Key, ctx Context) ([]Effect, State) {
	switch state.Mode {
	case ModeNormal:
		return handleNormal(state, key, ctx)
	case ModeSearch:
		return handleSearch(state, key, ctx)
	case ModeCommand:
		return handleCommand(state, key, ctx)
	case ModeURLPicker:
		return handleURLPicker(state, key, ctx)
	default:
		return nil, state
	}
}
