package enumerate

import "errors"

// ErrNoControlService means a device has no advertised audio-routing-control
// service endpoint, so no dialect-1 query has anywhere to be sent.
var ErrNoControlService = errors.New("enumerate: device has no audio-routing-control service")
