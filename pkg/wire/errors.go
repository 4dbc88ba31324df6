package wire

import "errors"

// Sentinel errors returned by codec, executor, and model operations.
// Callers should use errors.Is against these, since implementations wrap
// them with call-specific context via fmt.Errorf("...: %w", ErrX).
var (
	// ErrInvalidFrame means a parse failed: the payload was malformed,
	// truncated, or its magic/length/offsets were inconsistent.
	ErrInvalidFrame = errors.New("wire: invalid frame")

	// ErrTransport means a socket-level failure (bind/connect/send).
	ErrTransport = errors.New("wire: transport error")

	// ErrTimeout means an expected response did not arrive within the
	// socket's configured timeout.
	ErrTimeout = errors.New("wire: timeout")

	// ErrUnsupportedFeature means the operation is gated by model id and
	// the device is not in the allow-list.
	ErrUnsupportedFeature = errors.New("wire: unsupported feature")

	// ErrNotFound means a filter matched no device, channel, or subscription.
	ErrNotFound = errors.New("wire: not found")

	// ErrPrecondition means a required argument was missing or invalid,
	// e.g. a channel type other than "rx"/"tx".
	ErrPrecondition = errors.New("wire: precondition failed")
)
