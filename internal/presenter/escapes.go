package presenter

import "strconv"

const (
	enterAltScreen    = "\x1b[?1049h"
	leaveAltScreen    = "\x1b[?1049l"
	hideCursor        = "\x1b[?25l"
	showCursor        = "\x1b[?25h"
	suppressResponses = "" // the image-transfer quiet flag (q=2) carries this per command instead
)

// moveCursor returns the absolute cursor-position escape for a 0-based
// terminal row/column (emitted as the 1-based CSI form). the "Cursor discipline" rule requires every
// placement to use absolute positioning, never relative motion.
func moveCursor(row, col int) string {
	return csiMove(row+1, col+1)
}

func csiMove(row1Based, col1Based int) string {
	return "\x1b[" + strconv.Itoa(row1Based) + ";" + strconv.Itoa(col1Based) + "H"
}
