package session

import (
	"unicode/utf8"

	"github.com/prosepane/prosepane/internal/modal"
)

// decodeKey parses one key event from the head of buf, grounded on the
// named-escape-sequence table germtb-goli's keys.go uses for terminal
// input decoding. It returns the decoded key and how many bytes it
// consumed; consumed is 0 when buf is empty or ends in an incomplete
// UTF-8 rune or an ESC [ prefix whose final byte has not arrived.
func decodeKey(buf []byte) (modal.Key, int) {
	if len(buf) == 0 {
		return modal.Key{}, 0
	}
	switch buf[0] {
	case 0x03:
		return modal.Key{Name: modal.KeyCtrlC}, 1
	case 0x0d, 0x0a:
		return modal.Key{Name: modal.KeyEnter}, 1
	case 0x7f, 0x08:
		return modal.Key{Name: modal.KeyBksp}, 1
	case 0x1b:
		if len(buf) == 2 && buf[1] == '[' {
			// An arrow-key sequence whose final byte has not arrived yet.
			return modal.Key{}, 0
		}
		return decodeEscape(buf)
	}
	if !utf8.FullRune(buf) {
		return modal.Key{}, 0
	}
	r, size := decodeRune(buf)
	return modal.Key{Rune: r}, size
}

func decodeEscape(buf []byte) (modal.Key, int) {
	if len(buf) == 1 {
		return modal.Key{Name: modal.KeyEsc}, 1
	}
	if len(buf) >= 3 && buf[1] == '[' {
		switch buf[2] {
		case 'A':
			return modal.Key{Name: modal.KeyUp}, 3
		case 'B':
			return modal.Key{Name: modal.KeyDown}, 3
		}
	}
	return modal.Key{Name: modal.KeyEsc}, 1
}

// decodeRune decodes one UTF-8 rune, tolerating invalid lead bytes by
// consuming a single byte so the stream can resynchronize.
func decodeRune(buf []byte) (rune, int) {
	r, size := decodeUTF8(buf)
	if size < 1 {
		size = 1
	}
	return r, size
}

func decodeUTF8(buf []byte) (rune, int) {
	b0 := buf[0]
	switch {
	case b0 < 0x80:
		return rune(b0), 1
	case b0&0xE0 == 0xC0 && len(buf) >= 2:
		return rune(b0&0x1F)<<6 | rune(buf[1]&0x3F), 2
	case b0&0xF0 == 0xE0 && len(buf) >= 3:
		return rune(b0&0x0F)<<12 | rune(buf[1]&0x3F)<<6 | rune(buf[2]&0x3F), 3
	case b0&0xF8 == 0xF0 && len(buf) >= 4:
		return rune(b0&0x07)<<18 | rune(buf[1]&0x3F)<<12 | rune(buf[2]&0x3F)<<6 | rune(buf[3]&0x3F), 4
	default:
		return rune(b0), 1
	}
}
