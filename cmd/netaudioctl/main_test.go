package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netaudioctl/netaudio-go/pkg/control"
	"github.com/netaudioctl/netaudio-go/pkg/registry"
)

func testClient() *control.Client {
	return control.New(registry.New(), nil, nil, nil)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, -4, int(parseLevel("debug"))) // slog.LevelDebug
	require.Equal(t, 4, int(parseLevel("warn")))   // slog.LevelWarn
	require.Equal(t, 8, int(parseLevel("error")))  // slog.LevelError
	require.Equal(t, 0, int(parseLevel("info")))
	require.Equal(t, 0, int(parseLevel("bogus")), "unknown levels default to info")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	err := dispatch(testClient(), []string{"frobnicate"})
	require.ErrorContains(t, err, "unknown command")
}

func TestDispatchDevice_MissingSubcommand(t *testing.T) {
	require.ErrorContains(t, dispatchDevice(testClient(), nil), "missing subcommand")
}

func TestDispatchDevice_List_EmptyRegistryPrintsNothing(t *testing.T) {
	require.NoError(t, dispatchDevice(testClient(), []string{"list"}))
}

func TestDispatchDevice_Identify_WrongArgCount(t *testing.T) {
	err := dispatchDevice(testClient(), []string{"identify"})
	require.ErrorContains(t, err, "expected <server>")
}

func TestDispatchDevice_Identify_UnknownServer(t *testing.T) {
	err := dispatchDevice(testClient(), []string{"identify", "nope.local"})
	require.Error(t, err)
}

func TestDispatchChannel_MissingSubcommand(t *testing.T) {
	require.ErrorContains(t, dispatchChannel(testClient(), nil), "missing subcommand")
}

func TestDispatchChannel_List_WrongArgCount(t *testing.T) {
	err := dispatchChannel(testClient(), []string{"list", "server.local"})
	require.ErrorContains(t, err, "expected <server> <rx|tx>")
}

func TestDispatchChannel_SetName_InvalidChannelNumber(t *testing.T) {
	err := dispatchChannel(testClient(), []string{"set-name", "server.local", "rx", "notanumber", "name"})
	require.Error(t, err)
}

func TestDispatchChannel_UnknownSubcommand(t *testing.T) {
	err := dispatchChannel(testClient(), []string{"bogus"})
	require.ErrorContains(t, err, "unknown subcommand")
}

func TestDispatchConfig_MissingArgs(t *testing.T) {
	require.ErrorContains(t, dispatchConfig(testClient(), []string{"set-name"}), "missing subcommand and server")
}

func TestDispatchConfig_SetGain_InvalidDirection(t *testing.T) {
	err := dispatchConfig(testClient(), []string{"set-gain", "server.local", "sideways", "1", "200"})
	require.ErrorContains(t, err, "direction must be input or output")
}

func TestDispatchConfig_SetGain_WrongArgCount(t *testing.T) {
	err := dispatchConfig(testClient(), []string{"set-gain", "server.local", "input"})
	require.ErrorContains(t, err, "expected 3 argument")
}

func TestDispatchConfig_UnknownSubcommand(t *testing.T) {
	err := dispatchConfig(testClient(), []string{"bogus", "server.local"})
	require.ErrorContains(t, err, "unknown subcommand")
}

func TestDispatchSubscription_MissingArgs(t *testing.T) {
	require.ErrorContains(t, dispatchSubscription(testClient(), []string{"list"}), "missing subcommand and server")
}

func TestDispatchSubscription_Add_WrongArgCount(t *testing.T) {
	err := dispatchSubscription(testClient(), []string{"add", "server.local", "1"})
	require.ErrorContains(t, err, "expected 3 argument")
}

func TestDispatchSubscription_Remove_InvalidChannelNumber(t *testing.T) {
	err := dispatchSubscription(testClient(), []string{"remove", "server.local", "notanumber"})
	require.Error(t, err)
}

func TestRequireArg(t *testing.T) {
	called := false
	err := requireArg([]string{"a", "b"}, 2, func(a []string) error {
		called = true
		require.Equal(t, []string{"a", "b"}, a)
		return nil
	})
	require.NoError(t, err)
	require.True(t, called)

	err = requireArg([]string{"a"}, 2, func(a []string) error { return nil })
	require.ErrorContains(t, err, "expected 2 argument")
}
