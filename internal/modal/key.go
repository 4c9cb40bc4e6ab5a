package modal

// Key is one decoded terminal input event. Rune holds the literal
// character for printable keys; Name holds a symbolic name ("Up", "Enter",
// "Esc", "Ctrl-C") for control and escape sequences. Exactly one is set.
type Key struct {
	Rune rune
	Name string
}

// Named key constants, decoded from the raw escape sequences documented in
// the terminal-key idiom this package follows (germtb-goli's keys.go).
const (
	KeyEnter = "Enter"
	KeyEsc   = "Esc"
	KeyCtrlC = "Ctrl-C"
	KeyUp    = "Up"
	KeyDown  = "Down"
	KeyBksp  = "Backspace"
)

// IsDigit reports whether the key is an ASCII digit and returns its value.
func (k Key) IsDigit() (int, bool) {
	if k.Name != "" {
		return 0, false
	}
	if k.Rune < '0' || k.Rune > '9' {
		return 0, false
	}
	return int(k.Rune - '0'), true
}

// Is reports whether the key is the literal rune r.
func (k Key) Is(r rune) bool {
	return k.Name == "" && k.Rune == r
}

// IsName reports whether the key is the named symbolic key n.
func (k Key) IsName(n string) bool {
	return k.Name == n
}
