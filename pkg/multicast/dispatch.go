package multicast

import (
	"time"

	"github.com/netaudioctl/netaudio-go/pkg/enumerate"
	"github.com/netaudioctl/netaudio-go/pkg/executor"
	"github.com/netaudioctl/netaudio-go/pkg/log"
	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/registry"
	"github.com/netaudioctl/netaudio-go/pkg/socketpool"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

// dispatchContext carries the values dispatch needs without threading
// them through every branch individually.
type dispatchContext struct {
	device  *model.Device
	logger  log.Logger
	traceID string
	kind    group
}

// dispatch implements spec.md §4.G step 3's command-id switch, grounded
// on original_source/netaudio/console/commands/server/_mdns.py's
// parse_dante_message chain (each elif there becomes one case here).
// It is a plain function keyed on command id, never an event bus.
func dispatch(dc dispatchContext, cmdID uint16, frame []byte) {
	switch {
	case cmdID == wire.StatusMetering && dc.kind == groupMetering:
		dispatchMetering(dc, frame)
	case cmdID == wire.StatusVersions:
		dispatchVersions(dc, frame)
	case cmdID == wire.StatusMakeModel:
		dispatchMakeModel(dc, frame)
	case cmdID == wire.StatusHeartbeat && dc.kind == groupHeartbeat:
		dispatchHeartbeat(dc)
	case cmdID == wire.StatusRxChange, cmdID == wire.StatusTxFlowChange, cmdID == wire.StatusRoutingDeviceChange:
		dispatchRoutingChange(dc, cmdID)
	case cmdID == wire.StatusSampleRate, cmdID == wire.StatusEncoding, cmdID == wire.StatusClocking,
		cmdID == wire.StatusAES67, cmdID == wire.StatusLock, cmdID == wire.StatusCodec,
		cmdID == wire.StatusInterface, cmdID == wire.StatusUpgrade:
		dispatchOpaqueStatus(dc, cmdID, frame)
	default:
		// Unrecognized or not-yet-modeled command id: observed but ignored,
		// matching parse_dante_message's final else branch.
	}

	dc.logger.Log(log.Event{
		TraceID:    dc.traceID,
		ServerName: dc.device.ServerName(),
		Direction:  log.DirectionIn,
		Layer:      log.LayerService,
		Category:   log.CategoryCommand,
		Command:    &log.CommandEvent{Dialect: 2, CommandID: cmdID},
	})
}

// dispatchVersions updates model-identifier fields from a versions-status
// frame (spec.md §4.G: "update device model / manufacturer").
func dispatchVersions(dc dispatchContext, frame []byte) {
	vs, err := wire.ParseVersionsStatus(frame)
	if err != nil {
		return
	}
	if vs.Model != "" {
		dc.device.SetVendorModel(vs.Model)
	}
	if vs.ModelID != "" {
		dc.device.SetModelID(vs.ModelID)
	}
}

// dispatchMakeModel updates manufacturer/model from a make-model-status
// frame.
func dispatchMakeModel(dc dispatchContext, frame []byte) {
	mm, err := wire.ParseMakeModelStatus(frame)
	if err != nil {
		return
	}
	if mm.Manufacturer != "" {
		dc.device.SetManufacturer(mm.Manufacturer)
	}
	if mm.Model != "" {
		dc.device.SetModelID(mm.Model)
	}
}

// dispatchMetering parses the trailing per-channel volume bytes and
// writes them into the device's channel records, sharing pkg/enumerate's
// unicast volume-reply parsing (spec.md §4.G: "parse the trailing
// rx_count_raw + tx_count_raw + 1 bytes as per-channel volume").
func dispatchMetering(dc dispatchContext, frame []byte) {
	_ = enumerate.ApplyVolume(dc.device, frame)
}

// dispatchOpaqueStatus captures a status frame whose fields this system
// does not parse, timestamped, as a content-specific-parser extension
// point (spec.md §4.G, SPEC_FULL.md §9 Open Question #2).
func dispatchOpaqueStatus(dc dispatchContext, cmdID uint16, frame []byte) {
	dc.device.SetOpaqueStatus(model.OpaqueStatus{
		CommandID: cmdID,
		Timestamp: time.Now(),
		Payload:   append([]byte(nil), frame...),
	})
}

// dispatchRoutingChange implements spec.md §4.G's rx-change/tx-flow-change/
// routing-device-change rule: invalidate the rx-channel map and re-run
// the enumerator's channel-discovery steps for the affected device. The
// tx map is also invalidated for a tx-flow-change, since that event means
// the device's own tx channel set moved. A fresh executor/enumerator pair
// is built from the device's own socket pool for the re-enumeration,
// rather than threaded in from the monitor, since every device owns its
// own pool (spec.md §9: "replace [cyclic references] with handle +
// lookup in the registry") and pkg/enumerate.Enumerator is bound to one.
func dispatchRoutingChange(dc dispatchContext, cmdID uint16) {
	dc.device.InvalidateRXChannels()
	if cmdID == wire.StatusTxFlowChange {
		dc.device.InvalidateTXChannels()
	}
	if pool, ok := dc.device.Pool().(*socketpool.Pool); ok {
		enumerate.New(executor.New(pool, dc.logger)).Enumerate(dc.device)
	}

	dc.logger.Log(log.Event{
		TraceID:    dc.traceID,
		ServerName: dc.device.ServerName(),
		Direction:  log.DirectionIn,
		Layer:      log.LayerService,
		Category:   log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityDevice,
			NewState: "rx-invalidated",
		},
	})
}

// dispatchHeartbeat refreshes a device's freshness window, extending its
// cache TTL to registry.DefaultTTL (spec.md §4.G: "extend its cache TTL
// to 5 s").
func dispatchHeartbeat(dc dispatchContext) {
	dc.device.Touch(registry.DefaultTTL)
}
