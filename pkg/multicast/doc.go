// Package multicast implements the three-group multicast monitor (spec.md
// §4.G): device-info, metering, and heartbeat. Each group is read by its
// own goroutine parked on a blocking ReadFromUDP, matching spec.md §5's
// "OS-thread-per-multicast-socket" requirement (Go's scheduler already
// multiplexes blocked goroutines onto OS threads, so one goroutine per
// group satisfies it without naming threads explicitly).
//
// Every datagram is attributed to a device by source IPv4 via the
// registry, then dispatched on the dialect-2 command id (bytes 26..28) to
// one of a fixed set of handlers: model/manufacturer updates, metering
// (shared parsing with pkg/enumerate's unicast volume path), opaque status
// capture for content-specific parsers that are extension points, rx/tx
// invalidation followed by re-enumeration, and heartbeat TTL refresh.
// Dispatch is a plain switch, never a pub/sub bus, per SPEC_FULL.md's
// "replace event-bus decoration with a plain dispatch function."
package multicast
