package discovery

import (
	"errors"
	"time"
)

// mDNS service type constants (spec.md §3, §4.F, §6).
const (
	// ServiceTypeARC is the audio-routing-control service, the primary
	// request/response port opened as a control socket.
	ServiceTypeARC = "_netaudio-arc._udp"

	// ServiceTypeDBC is the device-broadcast-control service.
	ServiceTypeDBC = "_netaudio-dbc._udp"

	// ServiceTypeCMC is the control-monitoring service; its "id" TXT
	// property carries the device MAC.
	ServiceTypeCMC = "_netaudio-cmc._udp"

	// ServiceTypeChannel is the channel-service; it MUST be discovered
	// but its port MUST NOT be opened as a control socket (spec.md §6).
	ServiceTypeChannel = "_netaudio-chan._udp"

	// Domain is the mDNS domain.
	Domain = "local"
)

// TXT property keys consumed from discovered services (spec.md §6).
const (
	PropertyMAC        = "id"
	PropertyModel      = "model"
	PropertyRate       = "rate"
	PropertyLatencyNS  = "latency_ns"
	PropertyRouterInfo = "router_info"

	// DanteViaRouterInfo is the router_info value that marks a
	// pure-software endpoint (spec.md §3, §6).
	DanteViaRouterInfo = `"Dante Via"`
)

// BrowseTimeout is the default mDNS browse window for one-shot commands
// (spec.md §4.F: "default 1.25 s"); the daemon instead runs until its
// context is cancelled.
const BrowseTimeout = 1250 * time.Millisecond

// Discovery errors.
var (
	ErrBrowseTimeout = errors.New("discovery: browse timeout")
)
