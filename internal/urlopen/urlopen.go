// Package urlopen spawns the platform URL opener for the URL picker's
// OpenUrl effect.
package urlopen

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open spawns the platform command to open url in the default handler.
func Open(url string) error {
	cmd, args := opener(url)
	if err := exec.Command(cmd, args...).Start(); err != nil {
		return fmt.Errorf("urlopen: spawn %s: %w", cmd, err)
	}
	return nil
}

func opener(url string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
