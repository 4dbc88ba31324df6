package control

import (
	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

// ListSubscriptions returns a device's currently-known subscription
// records (spec.md §6 "subscription list"). Subscriptions are discovered
// through enumeration, not tracked as independently mutable local state,
// so this simply reflects whatever the last rx-channels enumeration found.
func (c *Client) ListSubscriptions(serverName string) ([]model.Subscription, error) {
	device, err := c.device(serverName)
	if err != nil {
		return nil, err
	}
	return device.Subscriptions(), nil
}

// AddSubscription subscribes an rx channel to a named tx channel on a
// named tx device (spec.md §6 "subscription add"). Use
// model.SelfReferenceToken for txDeviceName to subscribe to a channel on
// the device itself.
func (c *Client) AddSubscription(serverName string, rxChannel uint8, txChannelName, txDeviceName string) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	_, err = c.arcSend(device, wire.BuildAddSubscription(nextSeq(), rxChannel, txChannelName, txDeviceName))
	return err
}

// RemoveSubscription clears whatever subscription is currently assigned
// to the given rx channel (spec.md §6 "subscription remove").
func (c *Client) RemoveSubscription(serverName string, rxChannel uint8) error {
	device, err := c.device(serverName)
	if err != nil {
		return err
	}
	_, err = c.arcSend(device, wire.BuildRemoveSubscription(nextSeq(), rxChannel))
	return err
}
