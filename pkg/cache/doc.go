// Package cache implements the TTL-bounded state store (spec.md §4.H):
// discovery results and last-known device state, keyed by server name,
// with check-then-delete expiry on read and full overwrite on write. Two
// backends share the Store interface: FileStore, a local JSON file
// (grounded on the teacher's pkg/persistence/state.go mutex+marshal
// mechanics), and RedisStore, an optional external shared KV store for
// cross-process sharing (spec.md §6, original_source's mdns_cache.py).
package cache
