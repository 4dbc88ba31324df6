package control

import (
	"sort"

	"github.com/netaudioctl/netaudio-go/pkg/enumerate"
	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

// ListDevices returns every device currently in the registry, sorted by
// server name for a stable listing (spec.md §6 "device list").
func (c *Client) ListDevices() []*model.Device {
	devices := c.reg.List()
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].ServerName() < devices[j].ServerName()
	})
	return devices
}

// EnumerateDevice runs the enumerator's fill-in-missing-state pass against
// one device (spec.md §4.D's get_controls), dialing its socket pool first
// if it has none yet. Most callers reach a device's channels/subscriptions
// through this rather than by waiting on passive discovery.
func (c *Client) EnumerateDevice(serverName string) (enumerate.EnumerationResult, error) {
	device, err := c.device(serverName)
	if err != nil {
		return enumerate.EnumerationResult{}, err
	}
	exec, err := c.executorFor(device)
	if err != nil {
		return enumerate.EnumerationResult{}, err
	}
	result := enumerate.New(exec).Enumerate(device)
	c.persistDevice(device)
	return result, nil
}

// Identify sends a dialect-2 identify frame, the Go counterpart of
// DanteDevice.identify (usually a front-panel LED flash or chime).
func (c *Client) Identify(serverName string) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	return c.settingsSend(device, wire.BuildIdentifyDevice())
}

// SetDeviceName sends a set-device-name frame. Per spec.md §4.D, this does
// not update device.Name() locally. No multicast status handled by
// pkg/multicast carries the name, and Enumerate queries the name only
// while device.Name() is empty.
func (c *Client) SetDeviceName(serverName, name string) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	_, err = c.arcSend(device, wire.BuildSetDeviceName(nextSeq(), name))
	return err
}

// ResetDeviceName sends a reset-device-name frame, restoring the device's
// factory name.
func (c *Client) ResetDeviceName(serverName string) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	_, err = c.arcSend(device, wire.BuildResetDeviceName(nextSeq()))
	return err
}
