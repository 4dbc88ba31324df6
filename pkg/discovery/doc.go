// Package discovery implements the mDNS service browser that feeds the
// device registry (spec.md §4.F): it browses the four netaudio service
// types, reconciles Added/Removed service events into model.Device service
// maps, and fills in the handful of device fields that are only ever
// observed via mDNS TXT properties (MAC, model id, sample rate, latency,
// the Dante-Via software tag).
//
// # Service types
//
// Devices advertise up to four mDNS service types, one per logical role:
//
//	_netaudio-arc._udp   audio-routing-control (the primary request/response port)
//	_netaudio-dbc._udp   device-broadcast-control
//	_netaudio-cmc._udp   control-monitoring (carries the "id" MAC property)
//	_netaudio-chan._udp  channel-service (discovered only; never opened as a control socket)
//
// # TXT properties
//
// id (control-monitoring only) -> device MAC, model -> device model id,
// rate -> sample rate, latency_ns -> latency, router_info == "Dante Via" ->
// software tag. Unrecognized properties are retained on the service
// endpoint's property map but otherwise ignored.
//
// This package only browses; a netaudio controller never advertises its own
// mDNS service (unlike the teacher's commissioner/commissionable roles,
// which are peer-to-peer), so there is no Advertiser here.
package discovery
