package discovery

import (
	"encoding/hex"
	"net"
	"strconv"

	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/registry"
)

// parseDeviceMAC decodes the "id" TXT property, which browser.py stores as
// a bare 12-hex-digit string (e.g. "525400385eba") rather than the
// colon/dash-separated form net.ParseMAC expects. Accepts that
// separator-free form alongside net.ParseMAC's, so either representation
// the service properties might carry resolves correctly.
func parseDeviceMAC(id string) (net.HardwareAddr, error) {
	if mac, err := net.ParseMAC(id); err == nil {
		return mac, nil
	}
	b, err := hex.DecodeString(id)
	if err != nil {
		return nil, err
	}
	if len(b) != 6 {
		return nil, &net.AddrError{Err: "invalid MAC address", Addr: id}
	}
	return net.HardwareAddr(b), nil
}

// reconcileAdded implements spec.md §4.F's Added rule against plain
// values, independent of the mDNS library's entry type so it can be
// exercised directly in tests. It looks up or creates the device keyed by
// serverName, attaches the service, and fills in any device fields the
// property map carries.
func reconcileAdded(reg *registry.Registry, serverName string, ipv4 net.IP, instance string, port int, kind model.ServiceType, props PropertyMap) *model.Device {
	device := reg.GetOrCreate(serverName)

	device.AddService(&model.ServiceEndpoint{
		InstanceName: instance,
		Type:         kind,
		IPv4:         ipv4,
		Port:         port,
		Properties:   props.ToStringMap(),
	})

	if ipv4 != nil && device.IPv4() == nil {
		device.SetIPv4(ipv4)
	}

	if kind == model.ServiceControlMonitoring {
		if id, ok := props[PropertyMAC]; ok {
			if mac, err := parseDeviceMAC(id); err == nil {
				device.SetMAC(mac)
			}
		}
	}
	if modelID, ok := props[PropertyModel]; ok {
		device.SetModelID(modelID)
	}
	if rate, ok := props[PropertyRate]; ok {
		if r, err := strconv.ParseUint(rate, 10, 32); err == nil {
			device.SetSampleRate(uint32(r))
		}
	}
	if latency, ok := props[PropertyLatencyNS]; ok {
		if l, err := strconv.ParseInt(latency, 10, 64); err == nil {
			device.SetLatencyNS(l)
		}
	}
	if router, ok := props[PropertyRouterInfo]; ok && router == DanteViaRouterInfo {
		device.SetSoftware("Dante Via")
	}

	return device
}

// reconcileRemoved implements spec.md §4.F's Removed rule: delete the
// service entry, and delete the device entirely once its service set is
// empty. It reports whether the device itself was removed.
func reconcileRemoved(reg *registry.Registry, serverName, instance string) bool {
	device, ok := reg.Get(serverName)
	if !ok {
		return false
	}
	if remaining := device.RemoveService(instance); remaining == 0 {
		reg.Remove(serverName)
		return true
	}
	return false
}
