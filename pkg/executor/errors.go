package executor

import "errors"

// ErrNoSocket is returned when the requested port has no socket in the pool.
var ErrNoSocket = errors.New("executor: no socket for port")
