package control

import (
	"fmt"

	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

// ChannelDirection selects which of a device's two channel maps an
// operation targets, matching original_source's channel_type argument
// ("rx" or "tx") to set_channel_name/reset_channel_name.
type ChannelDirection string

const (
	ChannelRX ChannelDirection = "rx"
	ChannelTX ChannelDirection = "tx"
)

func (d ChannelDirection) modelDirection() (model.Direction, error) {
	switch d {
	case ChannelRX:
		return model.DirectionRX, nil
	case ChannelTX:
		return model.DirectionTX, nil
	default:
		return 0, fmt.Errorf("control: channel direction %q: %w", d, wire.ErrPrecondition)
	}
}

// ListChannels returns every channel a device currently knows about in the
// requested direction (spec.md §6 "channel list").
func (c *Client) ListChannels(serverName string, direction ChannelDirection) ([]*model.Channel, error) {
	device, err := c.device(serverName)
	if err != nil {
		return nil, err
	}
	switch direction {
	case ChannelRX:
		return device.RXChannels(), nil
	case ChannelTX:
		return device.TXChannels(), nil
	default:
		return nil, fmt.Errorf("control: channel direction %q: %w", direction, wire.ErrPrecondition)
	}
}

// SetChannelName sets the name of one channel. Like every mutation, it
// relies on re-enumeration or a change event to refresh local state
// (spec.md §4.D).
func (c *Client) SetChannelName(serverName string, direction ChannelDirection, channelNumber uint8, name string) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	if _, err := direction.modelDirection(); err != nil {
		return err
	}

	var frame []byte
	switch direction {
	case ChannelRX:
		frame = wire.BuildSetOrResetRxChannelName(nextSeq(), channelNumber, &name)
	case ChannelTX:
		frame = wire.BuildSetOrResetTxChannelName(nextSeq(), channelNumber, &name)
	}
	_, err = c.arcSend(device, frame)
	return err
}

// ResetChannelName restores a channel's factory name.
func (c *Client) ResetChannelName(serverName string, direction ChannelDirection, channelNumber uint8) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	if _, err := direction.modelDirection(); err != nil {
		return err
	}

	var frame []byte
	switch direction {
	case ChannelRX:
		frame = wire.BuildSetOrResetRxChannelName(nextSeq(), channelNumber, nil)
	case ChannelTX:
		frame = wire.BuildSetOrResetTxChannelName(nextSeq(), channelNumber, nil)
	}
	_, err = c.arcSend(device, frame)
	return err
}
