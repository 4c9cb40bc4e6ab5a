// Package clipboard sets the system clipboard via the terminal's OSC 52
// escape rather than shelling out to a platform clipboard utility, so it
// works identically over SSH.
package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
)

const osc52Set = "\x1b]52;c;%s\x07"

// Set writes the OSC 52 clipboard-set escape for text to w.
func Set(w io.Writer, text string) error {
	payload := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(w, osc52Set, payload)
	if err != nil {
		return fmt.Errorf("clipboard: write osc52: %w", err)
	}
	return nil
}
