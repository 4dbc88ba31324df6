package wire

import (
	"encoding/hex"
	"fmt"
	"net"
)

// macHex renders a 6-byte MAC as 12 lowercase hex characters.
func macHex(mac [6]byte) string {
	return hex.EncodeToString(mac[:])
}

// BuildEnableAES67 builds the interop-mode toggle frame. The byte layout
// is a literal fixture (spec.md §8 S5), including the hard-coded test MAC
// 52:54:00:38:5e:ba that every device accepts regardless of its own MAC
// (spec.md §9 Open Question #3).
func BuildEnableAES67(enabled bool) []byte {
	enable := 0
	if enabled {
		enable = 1
	}
	s := fmt.Sprintf(
		"ffff002400ff22dc%s0000%s0734100600000064000100%02x",
		macHex(fixtureTestMAC), hex.EncodeToString(dialect2VendorMagic), enable,
	)
	b, _ := hex.DecodeString(s)
	return b
}

// BuildSetSampleRate builds a frame requesting a sample-rate change.
func BuildSetSampleRate(sampleRate uint32) []byte {
	s := fmt.Sprintf(
		"ffff002803d400005254000000000000%s07270081000000640000000100%06x",
		hex.EncodeToString(dialect2VendorMagic), sampleRate,
	)
	b, _ := hex.DecodeString(s)
	return b
}

// GainDirection selects the input or output gain-control frame prefix.
type GainDirection string

const (
	GainInput  GainDirection = "input"
	GainOutput GainDirection = "output"
)

// BuildSetGainLevel builds a frame requesting a gain-level change on a
// single channel. direction must be GainInput or GainOutput.
func BuildSetGainLevel(channelNumber uint8, gainLevel uint8, direction GainDirection) ([]byte, error) {
	var prefix string
	switch direction {
	case GainInput:
		prefix = fmt.Sprintf("ffff0034034400005254000000000000%s0727100a0000000000010001000c001001020000000000",
			hex.EncodeToString(dialect2VendorMagic))
	case GainOutput:
		prefix = fmt.Sprintf("ffff0034032600005254000000000000%s0727100a0000000000010001000c001002010000000000",
			hex.EncodeToString(dialect2VendorMagic))
	default:
		return nil, fmt.Errorf("%w: gain direction %q", ErrPrecondition, direction)
	}
	s := fmt.Sprintf("%s%02x000000%02x", prefix, channelNumber, gainLevel)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	return b, nil
}

// BuildSetEncoding builds a frame requesting an encoding change.
func BuildSetEncoding(encoding uint8) []byte {
	s := fmt.Sprintf(
		"ffff004003d700005254000000000000%s072700830000006400000001000000%02x",
		hex.EncodeToString(dialect2VendorMagic), encoding,
	)
	b, _ := hex.DecodeString(s)
	return b
}

// BuildIdentifyDevice builds a frame that causes the device to identify
// itself (e.g. flash an LED). The destination MAC defaults to all zeros
// per spec.md §9 Open Question #3.
func BuildIdentifyDevice() []byte {
	s := fmt.Sprintf(
		"ffff00200bc80000%s0000%s0731006300000064",
		macHex(zeroMAC), hex.EncodeToString(dialect2VendorMagic),
	)
	b, _ := hex.DecodeString(s)
	return b
}

// BuildMakeModelQuery builds a unicast query for the device's
// manufacturer/model strings, addressed using the device's own MAC.
func BuildMakeModelQuery(mac [6]byte) []byte {
	s := fmt.Sprintf(
		"ffff00200fdb0000%s0000%s073100c100000000",
		macHex(mac), hex.EncodeToString(dialect2VendorMagic),
	)
	b, _ := hex.DecodeString(s)
	return b
}

// BuildDanteModelQuery builds a unicast query for the device's vendor
// model string, addressed using the device's own MAC.
func BuildDanteModelQuery(mac [6]byte) []byte {
	s := fmt.Sprintf(
		"ffff00200fdb0000%s0000%s0731006100000000",
		macHex(mac), hex.EncodeToString(dialect2VendorMagic),
	)
	b, _ := hex.DecodeString(s)
	return b
}

// nameLengths computes the three length fields embedded in a volume
// start/stop frame, per command_builder.py's _get_name_lengths.
func nameLengths(deviceName string) (n1, n2, n3 int) {
	nameLen := len(deviceName)
	offset := (nameLen & 1) - 2
	padding := 10 - (nameLen + offset)
	n1 = nameLen*2 + padding
	n2 = n1 + 2
	n3 = n2 + 4
	return
}

// BuildVolumeStart builds the device-control frame that starts a
// continuous volume-metering stream to (ipv4, port). timeoutFlag mirrors
// the Python reference's `timeout` argument, which toggles a single
// trailing flag word rather than an actual duration.
func BuildVolumeStart(deviceName string, ipv4 net.IP, mac [6]byte, port uint16, timeoutFlag bool) []byte {
	return buildVolumeFrame(deviceName, ipv4, mac, port, timeoutFlag, true)
}

// BuildVolumeStop builds the device-control frame that stops a
// previously-started volume-metering stream.
func BuildVolumeStop(deviceName string, ipv4 net.IP, mac [6]byte, port uint16) []byte {
	return buildVolumeFrame(deviceName, net.IPv4zero, mac, 0, false, false)
}

func buildVolumeFrame(deviceName string, ipv4 net.IP, mac [6]byte, port uint16, timeoutFlag, start bool) []byte {
	n1, n2, n3 := nameLengths(deviceName)
	nameHex := hex.EncodeToString([]byte(deviceName))
	if len(deviceName)%2 == 0 {
		nameHex += "00"
	}

	var dataLen int
	switch {
	case len(deviceName) < 2:
		dataLen = 54
	case len(deviceName) < 4:
		dataLen = 56
	default:
		dataLen = len(deviceName) + (len(deviceName) & 1) + 54
	}

	ip4 := ipv4.To4()
	if ip4 == nil {
		ip4 = net.IPv4zero.To4()
	}
	ipHex := hex.EncodeToString(ip4)

	var s string
	if start {
		timeoutWord := 0
		if timeoutFlag {
			timeoutWord = 1
		}
		s = fmt.Sprintf(
			"120000%02xffff301000000000%s0000000400%02x000100%02x000a%s160001000100%02x0001%04x%04x0000%s%04x0000",
			dataLen, macHex(mac), n1, n2, nameHex, n3, port, timeoutWord, ipHex, port,
		)
	} else {
		s = fmt.Sprintf(
			"120000%02xffff301000000000%s0000000400%02x000100%02x000a%s010016000100%02x0001%04x00010000%s%04x0000",
			dataLen, macHex(mac), n1, n2, nameHex, n3, port, ipHex, 0,
		)
	}
	b, _ := hex.DecodeString(s)
	return b
}
