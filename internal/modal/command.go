package modal

func handleCommand(state State, key Key, ctx Context) ([]Effect, State) {
	switch {
	case key.IsName(KeyEsc), key.IsName(KeyCtrlC):
		next := state
		next.Mode = ModeNormal
		next.CommandLine = ""
		return []Effect{setMode(ModeNormal)}, next

	case key.IsName(KeyEnter):
		return applyCommand(state, ctx)

	case key.IsName(KeyBksp):
		next := state
		if len(next.CommandLine) > 0 {
			r := []rune(next.CommandLine)
			next.CommandLine = string(r[:len(r)-1])
		}
		return nil, next

	case key.Rune != 0:
		next := state
		next.CommandLine += string(key.Rune)
		return nil, next

	default:
		return nil, state
	}
}

func applyCommand(state State, ctx Context) ([]Effect, State) {
	next := state
	next.Mode = ModeNormal
	cmd := next.CommandLine
	next.CommandLine = ""

	switch cmd {
	case "quit", "q":
		return []Effect{effectQuit}, next
	case "reload", "rel":
		return []Effect{effectReload, setMode(ModeNormal)}, next
	case "open":
		return openURLsOnLine(ctx, ctx.CurrentLine, next)
	default:
		return []Effect{flash("unknown command: " + cmd), setMode(ModeNormal)}, next
	}
}
