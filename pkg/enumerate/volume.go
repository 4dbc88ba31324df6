package enumerate

import (
	"fmt"
	"net"

	"github.com/netaudioctl/netaudio-go/pkg/executor"
	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/socketpool"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

// MeterVolume runs one volume-metering exchange for a device: it starts a
// metering stream on the device-control port, listens on a locally-bound
// socket for the device's single reply datagram, stops the stream, and
// applies the parsed per-channel volume bytes. It is a no-op (nil error)
// when the device is gated out by model.VolumeSupported, and returns nil
// without applying anything when the device reports metering as
// unsupported via the 0xff sentinel in the start response, matching
// get_volume's corresponding early returns.
func MeterVolume(device *model.Device, exec *executor.Executor, pool *socketpool.Pool, localIP net.IP, meteringPort int) error {
	if !model.VolumeSupported(device.ModelID(), device.Software()) {
		return nil
	}

	mac, err := macArray(device.MAC())
	if err != nil {
		return err
	}

	startFrame := wire.BuildVolumeStart(device.Name(), device.IPv4(), mac, uint16(meteringPort), true)
	resp, err := exec.SendAndReceive(wire.PortDeviceControl, startFrame)
	if err != nil {
		return err
	}
	if len(resp) > 15 && resp[15] == 0xff {
		return nil
	}

	sock, err := pool.GetOrCreateSocket(localIP, meteringPort)
	if err != nil {
		return err
	}

	data, addr, err := sock.ReceiveFrom()
	if err != nil {
		return err
	}
	if addr == nil || !addr.IP.Equal(device.IPv4()) {
		return nil
	}

	stopFrame := wire.BuildVolumeStop(device.Name(), device.IPv4(), mac, uint16(meteringPort))
	if err := exec.Send(wire.PortDeviceControl, stopFrame); err != nil {
		return err
	}

	return ApplyVolume(device, data)
}

// ApplyVolume slices the trailing rx/tx volume bytes off a metering
// datagram and assigns them to each channel by channel number, per
// parse_volume: the final byte is a terminator, the rxCountRaw bytes
// before it are rx channel volumes, and the txCountRaw bytes before
// those are tx channel volumes, both 1-indexed by channel number.
// Exported so pkg/multicast can apply the same parsing to metering
// datagrams received on the metering multicast group (spec.md §4.G).
func ApplyVolume(device *model.Device, data []byte) error {
	rxRaw, txRaw, _, _ := device.Counts()
	rxCount, txCount := int(rxRaw), int(txRaw)

	rxStart := len(data) - 1 - rxCount
	rxEnd := len(data) - 1
	txStart := rxStart - txCount
	txEnd := rxStart

	if txStart < 0 || rxEnd > len(data) {
		return fmt.Errorf("enumerate: volume payload too short for channel counts")
	}

	rxBytes := data[rxStart:rxEnd]
	txBytes := data[txStart:txEnd]

	for _, ch := range device.TXChannels() {
		if idx := int(ch.Number()) - 1; idx >= 0 && idx < len(txBytes) {
			ch.SetVolume(txBytes[idx])
		}
	}
	for _, ch := range device.RXChannels() {
		if idx := int(ch.Number()) - 1; idx >= 0 && idx < len(rxBytes) {
			ch.SetVolume(rxBytes[idx])
		}
	}
	return nil
}

func macArray(mac net.HardwareAddr) ([6]byte, error) {
	var out [6]byte
	if len(mac) != 6 {
		return out, fmt.Errorf("enumerate: device MAC is not 6 bytes (got %d)", len(mac))
	}
	copy(out[:], mac)
	return out, nil
}
