package model_test

import (
	"testing"

	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/stretchr/testify/require"
)

func TestGainSupported(t *testing.T) {
	require.True(t, model.GainSupported("DAI1", model.GainDirectionInput))
	require.False(t, model.GainSupported("DAI1", model.GainDirectionOutput))
	require.True(t, model.GainSupported("DAO2", model.GainDirectionOutput))
	require.False(t, model.GainSupported("UNKNOWN", model.GainDirectionInput))
}

func TestVolumeSupported(t *testing.T) {
	require.True(t, model.VolumeSupported("DAI1", ""))
	require.False(t, model.VolumeSupported("DVS", ""), "listed unsupported model id")
	require.False(t, model.VolumeSupported("DAI1", "Dante Via"), "software tag disables metering regardless of model id")
}
