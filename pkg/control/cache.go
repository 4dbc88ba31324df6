package control

import (
	"net"

	"github.com/netaudioctl/netaudio-go/pkg/model"
)

// cachedServiceEndpoint is the JSON-serializable form of a
// model.ServiceEndpoint, stored as part of a device's cache snapshot.
type cachedServiceEndpoint struct {
	InstanceName string            `json:"instance_name"`
	Type         model.ServiceType `json:"type"`
	IPv4         string            `json:"ipv4"`
	Port         int               `json:"port"`
}

// cachedDevice is the cache.Store snapshot spec.md §4.H/§6 describes: IPv4,
// human name, model identifiers, manufacturer, and the discovered service
// map, enough to resolve and dial a device without re-running mDNS browse.
type cachedDevice struct {
	IPv4         string                  `json:"ipv4"`
	Name         string                  `json:"name"`
	ModelID      string                  `json:"model_id"`
	VendorModel  string                  `json:"vendor_model"`
	Manufacturer string                  `json:"manufacturer"`
	Services     []cachedServiceEndpoint `json:"services"`
}

// persistDevice writes device's current snapshot to the cache, keyed by
// server name, overwriting any prior entry in full (spec.md §4.H: "on
// write, the entry overwrites in full"). A nil store, or a write failure,
// is silently ignored — the cache is an optimization, never a dependency
// live operations need to succeed (spec.md §7: "the state cache degrades
// gracefully").
func (c *Client) persistDevice(device *model.Device) {
	if c.store == nil {
		return
	}

	services := device.Services()
	cached := cachedDevice{
		Name:         device.Name(),
		ModelID:      device.ModelID(),
		VendorModel:  device.VendorModel(),
		Manufacturer: device.Manufacturer(),
		Services:     make([]cachedServiceEndpoint, 0, len(services)),
	}
	if ip := device.IPv4(); ip != nil {
		cached.IPv4 = ip.String()
	}
	for _, ep := range services {
		entry := cachedServiceEndpoint{InstanceName: ep.InstanceName, Type: ep.Type, Port: ep.Port}
		if ep.IPv4 != nil {
			entry.IPv4 = ep.IPv4.String()
		}
		cached.Services = append(cached.Services, entry)
	}

	_ = c.store.Set(device.ServerName(), cached)
}

// loadCachedDevice reconstitutes a registry entry for serverName from the
// cache, so a subsequent invocation can dial a known device directly
// instead of re-running mDNS browse (spec.md §2 item 4: "lets subsequent
// invocations avoid paying full mDNS latency"). It reports false when the
// store is disabled, bypassed via cfg.Refresh, or has no live entry.
func (c *Client) loadCachedDevice(serverName string) (*model.Device, bool) {
	if c.store == nil || c.cfg.Refresh {
		return nil, false
	}

	var cached cachedDevice
	found, err := c.store.Get(serverName, &cached)
	if err != nil || !found || cached.IPv4 == "" {
		return nil, false
	}

	device := c.reg.GetOrCreate(serverName)
	device.SetIPv4(net.ParseIP(cached.IPv4))
	if cached.Name != "" {
		device.SetName(cached.Name)
	}
	if cached.ModelID != "" {
		device.SetModelID(cached.ModelID)
	}
	if cached.VendorModel != "" {
		device.SetVendorModel(cached.VendorModel)
	}
	if cached.Manufacturer != "" {
		device.SetManufacturer(cached.Manufacturer)
	}
	for _, ep := range cached.Services {
		svc := &model.ServiceEndpoint{InstanceName: ep.InstanceName, Type: ep.Type, Port: ep.Port}
		if ep.IPv4 != "" {
			svc.IPv4 = net.ParseIP(ep.IPv4)
		}
		device.AddService(svc)
	}
	return device, true
}
