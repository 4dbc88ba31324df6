package multicast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netaudioctl/netaudio-go/pkg/log"
	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/registry"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

func testDispatchContext(device *model.Device, kind group) dispatchContext {
	return dispatchContext{
		device:  device,
		logger:  log.NoopLogger{},
		traceID: "test",
		kind:    kind,
	}
}

// frameWithCommandID builds a minimal dialect-2-shaped byte slice long
// enough for wire.Dialect2CommandID to extract the id at bytes 26..28,
// with the rest zero-filled.
func frameWithCommandID(cmdID uint16, extra int) []byte {
	frame := make([]byte, 28+extra)
	frame[0], frame[1] = 0xff, 0xff
	frame[26] = byte(cmdID >> 8)
	frame[27] = byte(cmdID)
	return frame
}

func TestDispatchUnrecognizedCommandIsIgnored(t *testing.T) {
	device := model.NewDevice("host1.local")
	dc := testDispatchContext(device, groupDeviceInfo)

	dispatch(dc, 0x9999, frameWithCommandID(0x9999, 0))

	assert.Empty(t, device.ModelID())
	assert.Empty(t, device.Manufacturer())
}

func TestDispatchMeteringOnlyAppliesOnMeteringGroup(t *testing.T) {
	device := model.NewDevice("host1.local")
	device.SetCounts(2, 2)
	device.SetRXChannels(map[uint8]*model.Channel{1: model.NewChannel(model.DirectionRX, 1)}, nil)
	dc := testDispatchContext(device, groupDeviceInfo)

	frame := append(frameWithCommandID(wire.StatusMetering, 10), 0)
	dispatch(dc, wire.StatusMetering, frame)

	for _, ch := range device.RXChannels() {
		assert.Equal(t, uint8(model.NotMeteredVolume), ch.Volume())
	}
}

func TestDispatchHeartbeatExtendsTTL(t *testing.T) {
	device := model.NewDevice("host1.local")
	dc := testDispatchContext(device, groupHeartbeat)

	dispatch(dc, wire.StatusHeartbeat, frameWithCommandID(wire.StatusHeartbeat, 0))

	assert.False(t, device.Stale(registry.DefaultTTL))
}

func TestDispatchHeartbeatIgnoredOutsideHeartbeatGroup(t *testing.T) {
	device := model.NewDevice("host1.local")
	device.Touch(0)
	time.Sleep(2 * time.Millisecond)
	dc := testDispatchContext(device, groupDeviceInfo)

	dispatch(dc, wire.StatusHeartbeat, frameWithCommandID(wire.StatusHeartbeat, 0))

	assert.True(t, device.Stale(0))
}

func TestDispatchRxChangeInvalidatesRXOnly(t *testing.T) {
	device := model.NewDevice("host1.local")
	device.SetCounts(1, 1)
	device.SetRXChannels(map[uint8]*model.Channel{1: model.NewChannel(model.DirectionRX, 1)}, nil)
	device.SetTXChannels(map[uint8]*model.Channel{1: model.NewChannel(model.DirectionTX, 1)})
	dc := testDispatchContext(device, groupDeviceInfo)

	dispatch(dc, wire.StatusRxChange, frameWithCommandID(wire.StatusRxChange, 0))

	assert.True(t, device.RXChannelsEmpty())
	assert.False(t, device.TXChannelsEmpty())
}

func TestDispatchTxFlowChangeInvalidatesBoth(t *testing.T) {
	device := model.NewDevice("host1.local")
	device.SetCounts(1, 1)
	device.SetRXChannels(map[uint8]*model.Channel{1: model.NewChannel(model.DirectionRX, 1)}, nil)
	device.SetTXChannels(map[uint8]*model.Channel{1: model.NewChannel(model.DirectionTX, 1)})
	dc := testDispatchContext(device, groupDeviceInfo)

	dispatch(dc, wire.StatusTxFlowChange, frameWithCommandID(wire.StatusTxFlowChange, 0))

	assert.True(t, device.RXChannelsEmpty())
	assert.True(t, device.TXChannelsEmpty())
}

func TestDispatchOpaqueStatusCapturesPayload(t *testing.T) {
	device := model.NewDevice("host1.local")
	dc := testDispatchContext(device, groupDeviceInfo)
	frame := frameWithCommandID(wire.StatusClocking, 4)

	dispatch(dc, wire.StatusClocking, frame)

	status, ok := device.GetOpaqueStatus(wire.StatusClocking)
	require.True(t, ok)
	assert.Equal(t, frame, status.Payload)
	assert.WithinDuration(t, time.Now(), status.Timestamp, time.Second)
}

func TestDispatchMakeModelUpdatesDevice(t *testing.T) {
	device := model.NewDevice("host1.local")
	dc := testDispatchContext(device, groupDeviceInfo)

	frame := make([]byte, 260)
	frame[0], frame[1] = 0xff, 0xff
	frame[26] = byte(wire.StatusMakeModel >> 8)
	frame[27] = byte(wire.StatusMakeModel)
	copy(frame[76:], []byte("Audinate\x00"))
	copy(frame[204:], []byte("DAI2\x00"))

	dispatch(dc, wire.StatusMakeModel, frame)

	assert.Equal(t, "Audinate", device.Manufacturer())
	assert.Equal(t, "DAI2", device.ModelID())
}

func TestDispatchVersionsUpdatesDevice(t *testing.T) {
	device := model.NewDevice("host1.local")
	dc := testDispatchContext(device, groupDeviceInfo)

	frame := make([]byte, 150)
	frame[0], frame[1] = 0xff, 0xff
	frame[26] = byte(wire.StatusVersions >> 8)
	frame[27] = byte(wire.StatusVersions)
	copy(frame[43:], []byte("PCN-16\x00"))
	copy(frame[88:], []byte("Dante:PCN16\x00"))

	dispatch(dc, wire.StatusVersions, frame)

	assert.Equal(t, "PCN-16", device.ModelID())
	assert.Equal(t, "Dante:PCN16", device.VendorModel())
}
