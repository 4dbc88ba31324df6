// Package enumerate drives the unicast command sequence that fills in a
// model.Device's identity, channel counts, channel maps, and subscriptions,
// plus the separate on-demand volume-metering exchange. It reproduces
// original_source's DanteDevice.get_controls/get_volume orchestration:
// each step is skipped once its target field is already populated, and a
// step's failure is recorded on the device rather than aborting the rest
// (spec.md §4.E, §7 tolerant partial enumeration).
package enumerate
