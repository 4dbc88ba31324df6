package control

import (
	"net"

	"github.com/netaudioctl/netaudio-go/pkg/enumerate"
	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

// SetEncoding sends a set-encoding frame (dialect-2, device-settings port).
func (c *Client) SetEncoding(serverName string, encoding uint8) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	return c.settingsSend(device, wire.BuildSetEncoding(encoding))
}

// SetSampleRate sends a set-sample-rate frame (dialect-2, device-settings port).
func (c *Client) SetSampleRate(serverName string, sampleRate uint32) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	return c.settingsSend(device, wire.BuildSetSampleRate(sampleRate))
}

// EnableAES67 toggles the device's AES67 interop mode (dialect-2,
// device-settings port). Per spec.md §1's Non-goal, this is the single
// mode-flag toggle this system supports — it does not implement the
// vendor's AES67 discovery specifics.
func (c *Client) EnableAES67(serverName string, enabled bool) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	return c.settingsSend(device, wire.BuildEnableAES67(enabled))
}

// SetLatency sends a set-latency frame (dialect-1, ARC port), in milliseconds.
func (c *Client) SetLatency(serverName string, latencyMS int) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	_, err = c.arcSend(device, wire.BuildSetLatency(nextSeq(), latencyMS))
	return err
}

// GainDirection selects the input or output gain stage, mirroring
// model.GainDirection (exported here so callers don't need to import
// pkg/model just to call SetGainLevel).
type GainDirection = model.GainDirection

const (
	GainInput  = model.GainDirectionInput
	GainOutput = model.GainDirectionOutput
)

// SetGainLevel sends a set-gain-level frame (dialect-2, device-settings
// port), gated by model.GainSupported: a device whose model id is not on
// the allow-list for direction returns wire.ErrUnsupportedFeature without
// sending anything, per spec.md §4.D.
func (c *Client) SetGainLevel(serverName string, channelNumber, gainLevel uint8, direction GainDirection) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	if !model.GainSupported(device.ModelID(), direction) {
		return wire.ErrUnsupportedFeature
	}

	var wireDirection wire.GainDirection
	if direction == model.GainDirectionInput {
		wireDirection = wire.GainInput
	} else {
		wireDirection = wire.GainOutput
	}

	frame, err := wire.BuildSetGainLevel(channelNumber, gainLevel, wireDirection)
	if err != nil {
		return err
	}
	return c.settingsSend(device, frame)
}

// GetVolume runs one volume-metering exchange against a device, updating
// its channels' Volume() fields on success. It is a no-op, returning nil,
// when the device is gated out by model.VolumeSupported (spec.md §4.D).
// localIP and meteringPort select the locally-bound socket the device is
// told to stream its reply to.
func (c *Client) GetVolume(serverName string, localIP net.IP, meteringPort int) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	pool, err := c.ensurePool(device)
	if err != nil {
		return err
	}
	exec, err := c.executorFor(device)
	if err != nil {
		return err
	}
	return enumerate.MeterVolume(device, exec, pool, localIP, meteringPort)
}
