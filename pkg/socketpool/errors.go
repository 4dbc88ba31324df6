package socketpool

import "errors"

// ErrSocketNotFound is returned when no socket exists for the requested
// port or service and the caller did not ask for on-demand creation.
var ErrSocketNotFound = errors.New("socketpool: no socket for port")
