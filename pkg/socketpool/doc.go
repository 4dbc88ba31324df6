// Package socketpool manages the per-device set of connected UDP sockets
// used to talk to a single Dante-style device: one socket per advertised
// control service, one per well-known port, and on-demand sockets for
// volume metering. Each socket carries its own read timeout, mirroring
// the three distinct timeouts the reference implementation applies.
package socketpool
