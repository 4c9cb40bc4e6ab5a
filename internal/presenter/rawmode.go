// Package presenter implements the terminal presentation protocol driver:
// image transfer/placement, sidebar and status text, and the raw-mode
// guard. It never writes a newline that could scroll the alternate
// screen and never clears the screen outright — only placement erase, so
// image data already uploaded survives between frames.
package presenter

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// RawModeGuard acquires raw mode on construction and restores canonical
// mode on every exit path, including panics. Scoped-acquisition, the
// same pattern a tcell.Screen's Init/Fini pair follows, generalized from
// a tcell.Screen to golang.org/x/term's raw-mode state so cursor
// placement and image escapes stay under this package's direct control
// instead of a curses-style diffing renderer.
type RawModeGuard struct {
	fd    int
	state *term.State
}

// Enter puts fd (normally os.Stdin's descriptor) into raw mode and enters
// the terminal's alternate screen + hides the cursor, returning a guard
// whose Restore must run on every exit path.
func Enter(w io.Writer, fd int) (*RawModeGuard, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("presenter: enter raw mode: %w", err)
	}
	fmt.Fprint(w, enterAltScreen, hideCursor, suppressResponses)
	return &RawModeGuard{fd: fd, state: state}, nil
}

// Restore leaves the alternate screen, shows the cursor, and restores
// canonical terminal mode. Safe to call more than once; the second call
// is a no-op once state has been consumed.
func (g *RawModeGuard) Restore(w io.Writer) {
	if g == nil || g.state == nil {
		return
	}
	fmt.Fprint(w, showCursor, leaveAltScreen)
	_ = term.Restore(g.fd, g.state)
	g.state = nil
}

// Size returns the terminal's cell and pixel dimensions. Queried once at
// start and again on every resize.
func Size(fd int) (cols, rows, pixelWidth, pixelHeight int, err error) {
	cols, rows, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("presenter: get size: %w", err)
	}
	pixelWidth, pixelHeight = queryPixelSize(fd, cols, rows)
	return cols, rows, pixelWidth, pixelHeight, nil
}

// StdinFd is the descriptor RawModeGuard and Size operate on in the
// viewer's normal case.
func StdinFd() int { return int(os.Stdin.Fd()) }
