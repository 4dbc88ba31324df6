package enumerate

import (
	"fmt"
	"math/rand"

	"github.com/netaudioctl/netaudio-go/pkg/executor"
	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

// Enumerator runs the audio-routing-control query sequence against a
// device's socket pool through an executor.Executor.
type Enumerator struct {
	exec *executor.Executor
}

// New creates an Enumerator bound to an executor.
func New(exec *executor.Executor) *Enumerator {
	return &Enumerator{exec: exec}
}

// EnumerationResult collects the non-fatal errors a single Enumerate call
// ran into. An empty Errors slice does not imply every step ran — steps
// already satisfied by prior state are skipped, not re-verified.
type EnumerationResult struct {
	Errors []error
}

func (r *EnumerationResult) addErr(err error) {
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
}

func nextSeq() uint16 {
	return uint16(rand.Intn(1 << 16))
}

// ARCPort finds the device's audio-routing-control service port, the Go
// counterpart of DanteDevice.get_service(SERVICE_ARC). Exported so callers
// outside this package (pkg/control's dialect-1 operations) can resolve the
// same port without re-walking device.Services() themselves.
func ARCPort(device *model.Device) (int, error) {
	for _, ep := range device.Services() {
		if ep.Type == model.ServiceAudioRoutingControl {
			return ep.Port, nil
		}
	}
	return 0, ErrNoControlService
}

// Enumerate fills in whatever identity, channel-count, and channel-map
// state the device is still missing, in the order get_controls runs them:
// name, then counts, then tx channels, then rx channels. Each step's
// failure is appended to the result and recorded via device.SetError, but
// does not stop later steps from running. The counts step re-runs
// whenever either count is still zero, not only when both are — matching
// get_controls's "if not rx_count or not tx_count" check, which means a
// device that genuinely has zero channels in one direction is re-queried
// on every call.
func (e *Enumerator) Enumerate(device *model.Device) EnumerationResult {
	var result EnumerationResult

	port, err := ARCPort(device)
	if err != nil {
		result.addErr(err)
		device.SetError(err)
		return result
	}

	if device.Name() == "" {
		if err := e.enumerateName(device, port); err != nil {
			result.addErr(fmt.Errorf("device name: %w", err))
		}
	}

	// Identity (manufacturer/model/vendor-model) is only actively queried
	// once the device's MAC is known (set during mDNS reconciliation);
	// without it there is no address to query, so the step is skipped
	// rather than treated as a failure.
	if len(device.MAC()) == 6 && (device.Manufacturer() == "" || device.ModelID() == "" || device.VendorModel() == "") {
		if err := e.enumerateIdentity(device); err != nil {
			result.addErr(fmt.Errorf("device identity: %w", err))
		}
	}

	rxRaw, txRaw, _, _ := device.Counts()
	if rxRaw == 0 || txRaw == 0 {
		if err := e.enumerateCounts(device, port); err != nil {
			result.addErr(fmt.Errorf("channel counts: %w", err))
		}
	}

	_, _, rxCount, txCount := device.Counts()

	if device.TXChannelsEmpty() && txCount > 0 {
		if err := e.enumerateTX(device, port, txCount); err != nil {
			result.addErr(fmt.Errorf("tx channels: %w", err))
		}
	}

	if device.RXChannelsEmpty() && rxCount > 0 {
		if err := e.enumerateRX(device, port, rxCount); err != nil {
			result.addErr(fmt.Errorf("rx channels: %w", err))
		}
	}

	if len(result.Errors) == 0 {
		device.SetError(nil)
	} else {
		device.SetError(result.Errors[len(result.Errors)-1])
	}
	return result
}

func (e *Enumerator) enumerateName(device *model.Device, port int) error {
	frame := wire.BuildDeviceNameQuery(nextSeq())
	resp, err := e.exec.SendAndReceive(port, frame)
	if err != nil {
		return err
	}
	name, err := wire.ParseDeviceName(resp)
	if err != nil {
		return err
	}
	device.SetName(name)
	return nil
}

func (e *Enumerator) enumerateCounts(device *model.Device, port int) error {
	frame := wire.BuildChannelCountQuery(nextSeq())
	resp, err := e.exec.SendAndReceive(port, frame)
	if err != nil {
		return err
	}
	tx, rx, err := wire.ParseChannelCounts(resp)
	if err != nil {
		return err
	}
	device.SetCounts(rx, tx)
	return nil
}

// pagesFor mirrors get_rx_channels/get_tx_channels's `max(count/16, 1)`
// page count: integer division, floored to at least one page.
func pagesFor(count int) int {
	pages := count / 16
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (e *Enumerator) enumerateRX(device *model.Device, port int, rxCount int) error {
	numPages := pagesFor(rxCount)
	channels := make(map[uint8]*model.Channel)
	var subs []model.Subscription

	for page := 0; page < numPages; page++ {
		frame, err := wire.BuildRxChannelsQuery(nextSeq(), page)
		if err != nil {
			return err
		}
		resp, err := e.exec.SendAndReceive(port, frame)
		if err != nil {
			return err
		}
		records, sampleRate, err := wire.ParseRxChannels(resp, rxCount)
		if err != nil {
			return err
		}
		if sampleRate != nil {
			device.SetSampleRate(*sampleRate)
		}

		for _, rec := range records {
			ch := model.NewChannel(model.DirectionRX, rec.ChannelNumber)
			ch.SetName(rec.RxChannelName)
			ch.SetStatus(model.ChannelStatus(rec.RxChannelStatus))
			channels[rec.ChannelNumber] = ch

			txDeviceName := rec.TxDeviceName
			if txDeviceName == model.SelfReferenceToken {
				txDeviceName = device.Name()
			}

			subs = append(subs, model.Subscription{
				RXChannelName:   rec.RxChannelName,
				RXDeviceName:    device.Name(),
				TXChannelName:   rec.TxChannelName,
				TXDeviceName:    txDeviceName,
				Status:          model.SubscriptionStatus(rec.SubscriptionStatus),
				RXChannelStatus: model.ChannelStatus(rec.RxChannelStatus),
			})
		}
	}

	device.SetRXChannels(channels, subs)
	return nil
}

func (e *Enumerator) enumerateTX(device *model.Device, port int, txCount int) error {
	numPages := pagesFor(txCount)

	friendlyNames := make(map[uint16]string)
	for page := 0; page < numPages; page += 2 {
		frame, err := wire.BuildTxChannelsQuery(nextSeq(), page, true)
		if err != nil {
			return err
		}
		resp, err := e.exec.SendAndReceive(port, frame)
		if err != nil {
			return err
		}
		names, err := wire.ParseTxFriendlyNames(resp, txCount)
		if err != nil {
			return err
		}
		for num, name := range names {
			friendlyNames[num] = name
		}
	}

	channels := make(map[uint8]*model.Channel)
	knownSampleRate := device.SampleRate()

	for page := 0; page < numPages; page += 2 {
		frame, err := wire.BuildTxChannelsQuery(nextSeq(), page, false)
		if err != nil {
			return err
		}
		resp, err := e.exec.SendAndReceive(port, frame)
		if err != nil {
			return err
		}
		pageResult, err := wire.ParseTxChannelsPage(resp, txCount, knownSampleRate)
		if err != nil {
			return err
		}
		if pageResult.SampleRate != 0 {
			knownSampleRate = pageResult.SampleRate
			device.SetSampleRate(pageResult.SampleRate)
		}

		for _, rec := range pageResult.Records {
			ch := model.NewChannel(model.DirectionTX, uint8(rec.ChannelNumber))
			ch.SetName(rec.Name)
			if friendly, ok := friendlyNames[rec.ChannelNumber]; ok {
				ch.SetFriendlyName(friendly)
			}
			channels[uint8(rec.ChannelNumber)] = ch
		}

		if pageResult.HasDisabledChannels {
			break
		}
	}

	device.SetTXChannels(channels)
	return nil
}
