// Package model holds the in-memory representation of a discovered
// device, its channels, and its subscriptions — the state an enumerator
// fills and a multicast listener invalidates (see pkg/enumerate and
// pkg/multicast). Every exported type follows the same shape: private
// fields guarded by a mutex, public getter/setter methods, and (for
// Device) an immutable snapshot type for external consumers.
package model
