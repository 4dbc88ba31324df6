// Package config loads and validates the runtime configuration surface
// spec.md §6 enumerates: mDNS timeout, network interface selection,
// payload dumping, cache bypass/TTL/directory, and the optional Redis
// address for cross-process state sharing. Floor-and-warn validation
// (mdns_timeout too low, cache TTL non-positive) mirrors original_source's
// app_config.py AppSettings property setters, logged through pkg/log
// rather than printed to stderr.
package config
