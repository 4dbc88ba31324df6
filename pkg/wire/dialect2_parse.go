package wire

import (
	"bytes"
	"fmt"
	"strings"
)

// DialectID reports the dialect a received frame belongs to, used by the
// multicast monitor to choose a parser.
func DialectID(frame []byte) (int, error) {
	if len(frame) >= 1 && frame[0] == Dialect1Magic {
		return 1, nil
	}
	if len(frame) >= 2 && frame[0] == 0xff && frame[1] == 0xff {
		return 2, nil
	}
	return 0, fmt.Errorf("%w: unrecognized frame magic", ErrInvalidFrame)
}

// Dialect2CommandID extracts the command/status id at bytes 26..28 of a
// dialect-2 frame (spec.md §4.G).
func Dialect2CommandID(frame []byte) (uint16, error) {
	if len(frame) < 28 {
		return 0, fmt.Errorf("%w: dialect-2 frame too short for command id", ErrInvalidFrame)
	}
	return uint16(frame[26])<<8 | uint16(frame[27]), nil
}

// MakeModelStatus is the manufacturer/model pair decoded from a
// make-model-status frame.
type MakeModelStatus struct {
	Manufacturer string
	Model        string
}

// ParseMakeModelStatus decodes a make/model status frame: manufacturer is
// NUL-terminated starting at offset 76; model is NUL-terminated starting
// at offset 204.
func ParseMakeModelStatus(frame []byte) (MakeModelStatus, error) {
	if len(frame) <= 204 {
		return MakeModelStatus{}, fmt.Errorf("%w: make-model frame too short", ErrInvalidFrame)
	}
	return MakeModelStatus{
		Manufacturer: nulTerminatedASCII(frame, 76),
		Model:        nulTerminatedASCII(frame, 204),
	}, nil
}

// VersionsStatus is the vendor-model/model-id pair decoded from a
// versions-status frame.
type VersionsStatus struct {
	Model   string
	ModelID string
}

// ParseVersionsStatus decodes a versions status frame: vendor model
// string is NUL-terminated starting at offset 88; model identifier is
// NUL-terminated starting at offset 43, with any embedded 0x03 byte
// stripped (the reference implementation observed this control byte
// embedded in some device responses).
func ParseVersionsStatus(frame []byte) (VersionsStatus, error) {
	if len(frame) <= 88 {
		return VersionsStatus{}, fmt.Errorf("%w: versions frame too short", ErrInvalidFrame)
	}
	modelID := strings.ReplaceAll(nulTerminatedASCII(frame, 43), "\x03", "")
	return VersionsStatus{
		Model:   nulTerminatedASCII(frame, 88),
		ModelID: modelID,
	}, nil
}

// nulTerminatedASCII decodes a NUL-terminated string starting at a fixed
// byte offset (as opposed to ExtractLabel's offset-field indirection).
// Truncated input yields the empty string, never an error.
func nulTerminatedASCII(frame []byte, offset int) string {
	if offset < 0 || offset >= len(frame) {
		return ""
	}
	rest := frame[offset:]
	if end := bytes.IndexByte(rest, 0x00); end >= 0 {
		rest = rest[:end]
	}
	return string(rest)
}
