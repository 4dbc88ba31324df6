package cache

import (
	"encoding/json"
	"time"
)

// DefaultTTL matches original_source/netaudio/common/mdns_cache.py's
// DEFAULT_CACHE_TTL (spec.md §4.H: "older than TTL (default 600 s)").
const DefaultTTL = 600 * time.Second

// Store is the TTL-bounded key-value store spec.md §4.H describes:
// check-then-delete expiry on Get, full overwrite on Set, unbuffered
// writes so concurrent readers see the latest committed state.
type Store interface {
	// Get returns the value stored under key, decoding it into out. It
	// reports false if the key is absent, expired (and is deleted as a
	// side effect), or its stored entry is corrupt (missing data or a
	// last-seen timestamp, also deleted as a side effect).
	Get(key string, out any) (bool, error)

	// Set stores value under key with the current time as its
	// last-seen timestamp, overwriting any existing entry.
	Set(key string, value any) error

	// Delete removes key, if present.
	Delete(key string) error

	// Clear drops every entry.
	Clear() error

	// Close releases any resources held by the store.
	Close() error
}

// entry is the on-disk/on-wire envelope around a cached value, matching
// mdns_cache.py's {"data": ..., "last_seen": ...} shape.
type entry struct {
	Data     json.RawMessage `json:"data"`
	LastSeen time.Time       `json:"last_seen"`
}

// expired reports whether entry e, read at now, is older than ttl.
func (e entry) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.LastSeen) > ttl
}
