package model

import "fmt"

// SelfReferenceToken is the wire literal meaning "this device" in a
// tx-device-name field (spec.md §4.A, §8 property 5). pkg/enumerate
// resolves it to the owning device's human name before constructing a
// Subscription, so Subscription.TXDeviceName below is always already
// unfolded.
const SelfReferenceToken = "."

// Subscription is a logical wire from a tx endpoint to an rx channel on
// this device. It carries only names/handles, never an owning device
// reference (spec.md §9: "replace [cyclic references] with handle +
// lookup in the registry").
type Subscription struct {
	RXChannelName string
	RXDeviceName  string
	TXChannelName string
	TXDeviceName  string // already unfolded; never the literal "."

	Status            SubscriptionStatus
	RXChannelStatus   ChannelStatus
}

// StatusText returns the human-readable subscription status.
func (s Subscription) StatusText() string {
	return s.Status.String()
}

// RXChannelStatusText returns the human-readable rx-channel status.
func (s Subscription) RXChannelStatusText() string {
	return s.RXChannelStatus.String()
}

// String renders the subscription the way original_source's
// DanteSubscription.__str__ does: "rx@rxdev <- tx@txdev [status]", or
// without the tx half when it is unresolved.
func (s Subscription) String() string {
	if s.TXChannelName == "" {
		return fmt.Sprintf("%s@%s [%s]", s.RXChannelName, s.RXDeviceName, s.StatusText())
	}
	return fmt.Sprintf("%s@%s <- %s@%s [%s]", s.RXChannelName, s.RXDeviceName, s.TXChannelName, s.TXDeviceName, s.StatusText())
}
