package model

// SubscriptionStatus is the 16-bit status code carried by a subscription
// record, observed in the subscription-status field of an rx-channel
// response (spec.md §3, original_source netaudio/dante/subscription_status.py).
type SubscriptionStatus uint16

const (
	SubscriptionNone                  SubscriptionStatus = 0
	SubscriptionUnresolved            SubscriptionStatus = 1
	SubscriptionResolveFail           SubscriptionStatus = 3
	SubscriptionSelfSubscribed        SubscriptionStatus = 4
	SubscriptionInProgress            SubscriptionStatus = 8
	SubscriptionDynamic               SubscriptionStatus = 9
	SubscriptionStatic                SubscriptionStatus = 10
	SubscriptionChannelFormatMismatch SubscriptionStatus = 16
)

// String returns the human-readable subscription status text.
func (s SubscriptionStatus) String() string {
	switch s {
	case SubscriptionNone:
		return "None"
	case SubscriptionUnresolved:
		return "Unresolved"
	case SubscriptionResolveFail:
		return "Resolve fail"
	case SubscriptionSelfSubscribed:
		return "Subscribed to self"
	case SubscriptionInProgress:
		return "In progress"
	case SubscriptionDynamic:
		return "Connected (unicast)"
	case SubscriptionStatic:
		return "Connected (multicast)"
	case SubscriptionChannelFormatMismatch:
		return "Channel format mismatch"
	default:
		return "Unknown"
	}
}

// ChannelStatus is the 16-bit status code carried by an rx-channel record
// (spec.md §3; a distinct enumeration from SubscriptionStatus, even though
// some numeric values coincide).
type ChannelStatus uint16

const (
	ChannelOK             ChannelStatus = 0x0000
	ChannelUnresolved     ChannelStatus = 0x0001
	ChannelOKSelf         ChannelStatus = 0x0004
	ChannelOKRemote       ChannelStatus = 0x0009
	ChannelFormatMismatch ChannelStatus = 0x0010
)

// String returns the human-readable channel status text.
func (c ChannelStatus) String() string {
	switch c {
	case ChannelOK:
		return "OK"
	case ChannelUnresolved:
		return "Unresolved"
	case ChannelOKSelf:
		return "OK (self)"
	case ChannelOKRemote:
		return "OK (remote)"
	case ChannelFormatMismatch:
		return "Format mismatch"
	default:
		return "Unknown"
	}
}
