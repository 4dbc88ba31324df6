package wire

import (
	"bytes"
	"unicode/utf8"
)

// ExtractLabel returns the NUL-terminated UTF-8 string that begins at
// offset bytes from the start of frame. An offset of zero, an offset past
// the end of the frame, a missing NUL terminator past otherwise-valid
// bytes, or invalid UTF-8 all yield the empty string rather than an error
// — implementations must tolerate truncation (spec.md §4.A, §8 property 2).
func ExtractLabel(frame []byte, offset int) string {
	if offset <= 0 || offset >= len(frame) {
		return ""
	}

	rest := frame[offset:]
	end := bytes.IndexByte(rest, 0x00)
	var label []byte
	if end >= 0 {
		label = rest[:end]
	} else {
		label = rest
	}

	if !utf8.Valid(label) {
		return ""
	}
	return string(label)
}
