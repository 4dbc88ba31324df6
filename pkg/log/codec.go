package log

import (
	"encoding/json"
	"io"
)

// EncodeEvent encodes an Event as a single JSON line.
func EncodeEvent(event Event) ([]byte, error) {
	return json.Marshal(event)
}

// DecodeEvent decodes a JSON-encoded Event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewEncoder creates a newline-delimited JSON encoder for log events.
func NewEncoder(w io.Writer) *json.Encoder {
	return json.NewEncoder(w)
}

// NewDecoder creates a newline-delimited JSON decoder for log events.
func NewDecoder(r io.Reader) *json.Decoder {
	return json.NewDecoder(r)
}
