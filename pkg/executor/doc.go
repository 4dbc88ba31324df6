// Package executor sends a built wire frame over a device's socket pool
// and optionally waits for a single reply datagram, classifying socket
// errors into the wire package's sentinel errors. It deliberately knows
// nothing about frame contents: building frames is pkg/wire's job,
// deciding what a device's channels look like is pkg/enumerate's.
package executor
