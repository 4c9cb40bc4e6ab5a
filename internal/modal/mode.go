// Package modal implements the input state machine : a
// pure (state, key) -> ([]Effect, state) transition function per mode, plus
// the numeric prefix accumulator shared across modes. Handlers never touch
// the terminal, the cache, or the document directly — they only describe
// intent via Effect values that an outer loop applies.
package modal

// Mode names the active input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeCommand
	ModeURLPicker
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeSearch:
		return "SEARCH"
	case ModeCommand:
		return "COMMAND"
	case ModeURLPicker:
		return "URL"
	default:
		return "?"
	}
}

// maxPrefix caps the numeric prefix accumulator so a pasted wall of
// digits can't be used to request an absurd scroll target.
const maxPrefix = 999_999

// State is the modal engine's complete state, threaded through every
// transition call.
type State struct {
	Mode           Mode
	Prefix         int
	HasPrefix      bool
	SearchQuery    string
	SearchHits     []int
	SearchCursor   int
	CommandLine    string
	URLs           []string
	URLSelected    int
	LastSearch     string
	LastSearchFlip bool // last search direction was reversed (N vs n)
}

// New returns the initial Normal-mode state.
func New() State {
	return State{Mode: ModeNormal}
}

// takePrefix returns the accumulated numeric prefix (defaulting to def
// when none was entered) and a cleared copy of state.
func (s State) takePrefix(def int) (int, State) {
	n := def
	if s.HasPrefix {
		n = s.Prefix
	}
	cleared := s
	cleared.Prefix = 0
	cleared.HasPrefix = false
	return n, cleared
}

func (s State) pushDigit(d int) State {
	n := s.Prefix*10 + d
	if n > maxPrefix {
		n = maxPrefix
	}
	s.Prefix = n
	s.HasPrefix = true
	return s
}
