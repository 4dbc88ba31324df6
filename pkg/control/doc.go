// Package control is the library-facing API surface spec.md §6 describes:
// the operations a CLI or daemon front end drives (device listing and
// identification, channel listing, naming, encoding/sample-rate/latency/
// gain changes, AES67 toggling, subscription management, and the
// discovery/multicast daemon loop). It sits above pkg/discovery,
// pkg/multicast, pkg/enumerate, pkg/executor, and pkg/cache, wiring them
// together the way original_source/netaudio/dante/device.py's DanteDevice
// methods and netaudio/manager.py's top-level helpers do, minus the
// command-line argument parsing itself.
//
// Mutating operations never write to local device state on success
// (spec.md §4.D): every Set*/Reset*/Add*/Remove* call only sends its
// frame and relies on a subsequent multicast change event or
// re-enumeration to converge, matching the concurrency model in spec.md §5.
package control
