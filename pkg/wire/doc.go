// Package wire builds and parses the two framing dialects used by the
// control protocol: dialect 1 (audio-routing-control request/response,
// magic byte 0x27) and dialect 2 (device-settings/device-info, magic
// 0xffff). Every exported Build function returns the exact bytes the wire
// expects; every Parse function tolerates truncated or malformed input by
// returning ErrInvalidFrame rather than panicking.
package wire
