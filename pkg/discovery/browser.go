package discovery

import (
	"context"
	"time"

	"github.com/enbility/zeroconf/v3/api"

	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/registry"
)

// Browser runs the mDNS discovery loop described in spec.md §4.F: browse
// the four netaudio service types and reconcile Added/Removed service
// events into a registry.Registry. Run blocks until ctx is cancelled or
// Stop is called.
type Browser interface {
	Run(ctx context.Context, reg *registry.Registry) error
	Stop()
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// BrowseTimeout is the one-shot browse window length. MDNSBrowser.Run
	// does not read this field; it browses until ctx is cancelled or Stop
	// is called.
	// Default: BrowseTimeout (1.25s, spec.md §4.F).
	BrowseTimeout time.Duration

	// Interface restricts browsing to one network interface by name.
	// Empty string means all interfaces.
	Interface string

	// ConnectionFactory creates multicast connections. Nil uses
	// zeroconf's default. Set this in tests to inject mock connections.
	ConnectionFactory api.ConnectionFactory

	// InterfaceProvider lists network interfaces. Nil uses zeroconf's
	// default. Set this in tests to inject mock interface lists.
	InterfaceProvider api.InterfaceProvider
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseTimeout: BrowseTimeout,
	}
}

// netaudioServiceType pairs an mDNS DNS-SD service type string with the
// model.ServiceType it is reconciled into (spec.md §6).
type netaudioServiceType struct {
	DNSType string
	Kind    model.ServiceType
}

var netaudioServiceTypes = []netaudioServiceType{
	{ServiceTypeARC, model.ServiceAudioRoutingControl},
	{ServiceTypeDBC, model.ServiceDeviceBroadcastControl},
	{ServiceTypeCMC, model.ServiceControlMonitoring},
	{ServiceTypeChannel, model.ServiceChannel},
}
