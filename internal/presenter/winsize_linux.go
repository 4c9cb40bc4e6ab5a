//go:build linux || darwin

package presenter

import (
	"syscall"
	"unsafe"
)

// winsize mirrors struct winsize from <sys/ioctl.h>; TIOCGWINSZ reports
// both the cell geometry (Row/Col) and its associated pixel extent
// (Xpixel/Ypixel) when the terminal emulator fills it in — most modern
// terminal emulators that also speak an inline-image protocol do.
type winsize struct {
	Row    uint16
	Col    uint16
	Xpixel uint16
	Ypixel uint16
}

// queryPixelSize reads TIOCGWINSZ directly (the same ioctl-based approach
// germtb-goli's term_linux.go uses for GetSize, extended here to also read
// the pixel fields GetSize discards) and falls back to an 8x16 cell
// estimate if the terminal leaves the pixel fields zeroed.
func queryPixelSize(fd int, cols, rows int) (widthPx, heightPx int) {
	var ws winsize
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), syscall.TIOCGWINSZ, uintptr(unsafe.Pointer(&ws)))
	if errno == 0 && ws.Xpixel > 0 && ws.Ypixel > 0 {
		return int(ws.Xpixel), int(ws.Ypixel)
	}
	return cols * 8, rows * 16
}
