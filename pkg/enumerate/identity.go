package enumerate

import (
	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

// enumerateIdentity actively queries manufacturer/model and vendor-model
// strings instead of waiting for the corresponding multicast status frames
// (SPEC_FULL.md §11: original_source issues these as separate dialect-2
// unicast requests, distinct from the passively-observed versions-status/
// make-model-status frames pkg/multicast already applies). Both queries
// are addressed with the device's own MAC and sent to the device-settings
// port, the same dialect-2 destination every other unicast query in this
// package uses.
func (e *Enumerator) enumerateIdentity(device *model.Device) error {
	mac, err := macArray(device.MAC())
	if err != nil {
		return err
	}

	if device.Manufacturer() == "" || device.ModelID() == "" {
		resp, err := e.exec.SendAndReceive(wire.PortDeviceSettings, wire.BuildMakeModelQuery(mac))
		if err != nil {
			return err
		}
		mm, err := wire.ParseMakeModelStatus(resp)
		if err != nil {
			return err
		}
		if mm.Manufacturer != "" {
			device.SetManufacturer(mm.Manufacturer)
		}
		if mm.Model != "" {
			device.SetModelID(mm.Model)
		}
	}

	if device.VendorModel() == "" {
		resp, err := e.exec.SendAndReceive(wire.PortDeviceSettings, wire.BuildDanteModelQuery(mac))
		if err != nil {
			return err
		}
		vs, err := wire.ParseVersionsStatus(resp)
		if err != nil {
			return err
		}
		if vs.Model != "" {
			device.SetVendorModel(vs.Model)
		}
	}

	return nil
}
