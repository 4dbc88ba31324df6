package model_test

import (
	"testing"

	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionStatus_String(t *testing.T) {
	cases := map[model.SubscriptionStatus]string{
		model.SubscriptionNone:                  "None",
		model.SubscriptionUnresolved:             "Unresolved",
		model.SubscriptionResolveFail:            "Resolve fail",
		model.SubscriptionSelfSubscribed:         "Subscribed to self",
		model.SubscriptionInProgress:             "In progress",
		model.SubscriptionDynamic:                "Connected (unicast)",
		model.SubscriptionStatic:                 "Connected (multicast)",
		model.SubscriptionChannelFormatMismatch:  "Channel format mismatch",
	}
	for status, want := range cases {
		require.Equal(t, want, status.String())
	}
	require.Equal(t, "Unknown", model.SubscriptionStatus(999).String())
}

func TestChannelStatus_String(t *testing.T) {
	cases := map[model.ChannelStatus]string{
		model.ChannelOK:             "OK",
		model.ChannelUnresolved:     "Unresolved",
		model.ChannelOKSelf:         "OK (self)",
		model.ChannelOKRemote:       "OK (remote)",
		model.ChannelFormatMismatch: "Format mismatch",
	}
	for status, want := range cases {
		require.Equal(t, want, status.String())
	}
	require.Equal(t, "Unknown", model.ChannelStatus(999).String())
}
