package wire

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// BuildFrame assembles a dialect-1 (audio-routing-control) frame: magic,
// nonce, a placeholder length, sequence id, command id, and body. The
// length field is filled in after the body is known, matching
// command_builder.py's command_string: build the frame, then overwrite
// the length byte with the final size.
func BuildFrame(nonce byte, seq, cmd uint16, body []byte) []byte {
	buf := make([]byte, 8+len(body))
	buf[0] = Dialect1Magic
	buf[1] = nonce
	binary.BigEndian.PutUint16(buf[4:6], seq)
	binary.BigEndian.PutUint16(buf[6:8], cmd)
	copy(buf[8:], body)
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(buf)))
	return buf
}

// BuildChannelCountQuery builds a channel-counts query frame.
func BuildChannelCountQuery(seq uint16) []byte {
	return BuildFrame(0, seq, CmdChannelCount, []byte{0x00, 0x00})
}

// BuildDeviceInfoQuery builds a device-info query frame.
func BuildDeviceInfoQuery(seq uint16) []byte {
	return BuildFrame(0, seq, CmdDeviceInfo, []byte{0x00, 0x00})
}

// BuildDeviceNameQuery builds a device-name query frame.
func BuildDeviceNameQuery(seq uint16) []byte {
	return BuildFrame(0, seq, CmdDeviceName, []byte{0x00, 0x00})
}

// BuildResetDeviceName builds a frame that resets the device's human name.
func BuildResetDeviceName(seq uint16) []byte {
	return BuildFrame(0, seq, CmdSetOrResetDeviceName, []byte{0x00, 0x00})
}

// BuildSetDeviceName builds a frame that sets the device's human name.
// Body: 2-byte reserved prefix, UTF-8 name bytes, NUL terminator.
func BuildSetDeviceName(seq uint16, name string) []byte {
	body := make([]byte, 0, 2+len(name)+1)
	body = append(body, 0x00, 0x00)
	body = append(body, []byte(name)...)
	body = append(body, 0x00)
	return BuildFrame(0, seq, CmdSetOrResetDeviceName, body)
}

// paginationBody builds the `0000 0001 00 P 10000` pagination body for a
// given page, where P is the page number as a single lowercase hex digit.
// Pages outside 0-15 would misalign the body (the digit would no longer
// occupy a single nibble), so those are rejected.
func paginationBody(page int) ([]byte, error) {
	if page < 0 || page > 15 {
		return nil, fmt.Errorf("%w: page %d out of range", ErrPrecondition, page)
	}
	hexStr := fmt.Sprintf("0000000100%x10000", page)
	return hex.DecodeString(hexStr)
}

// BuildRxChannelsQuery builds an rx-channels query frame for a page.
func BuildRxChannelsQuery(seq uint16, page int) ([]byte, error) {
	body, err := paginationBody(page)
	if err != nil {
		return nil, err
	}
	return BuildFrame(0, seq, CmdRxChannels, body), nil
}

// BuildTxChannelsQuery builds a tx-channels query frame for a page.
// friendlyNames selects the friendly-name overlay pass (command 0x2010)
// versus the plain pass (command 0x2000).
func BuildTxChannelsQuery(seq uint16, page int, friendlyNames bool) ([]byte, error) {
	body, err := paginationBody(page)
	if err != nil {
		return nil, err
	}
	cmd := CmdTxChannels
	if friendlyNames {
		cmd = CmdTxChannelsFriendly
	}
	return BuildFrame(0, seq, cmd, body), nil
}

// BuildSetOrResetRxChannelName builds a frame that sets (newName != nil)
// or resets (newName == nil) the name of an rx channel.
func BuildSetOrResetRxChannelName(seq uint16, channelNumber uint8, newName *string) []byte {
	channelHex := fmt.Sprintf("%02x", channelNumber)
	var bodyHex string
	if newName == nil {
		bodyHex = fmt.Sprintf("0000020100%s00140000000000", channelHex)
	} else {
		nameHex := hex.EncodeToString([]byte(*newName))
		bodyHex = fmt.Sprintf("0000020100%s001400000000%s00", channelHex, nameHex)
	}
	body, _ := hex.DecodeString(bodyHex)
	return BuildFrame(0, seq, CmdSetOrResetRxChannel, body)
}

// BuildSetOrResetTxChannelName builds a frame that sets (newName != nil)
// or resets (newName == nil) the name of a tx channel.
func BuildSetOrResetTxChannelName(seq uint16, channelNumber uint8, newName *string) []byte {
	channelHex := fmt.Sprintf("%02x", channelNumber)
	var bodyHex string
	if newName == nil {
		bodyHex = fmt.Sprintf("00000201000000%s001800000000000000", channelHex)
	} else {
		nameHex := hex.EncodeToString([]byte(*newName))
		bodyHex = fmt.Sprintf("00000201000000%s0018000000000000%s00", channelHex, nameHex)
	}
	body, _ := hex.DecodeString(bodyHex)
	return BuildFrame(0, seq, CmdSetOrResetTxChannel, body)
}

// BuildRemoveSubscription builds a frame that removes the subscription on
// the given rx channel.
func BuildRemoveSubscription(seq uint16, rxChannel uint8) []byte {
	bodyHex := fmt.Sprintf("00000001000000%02x", rxChannel)
	body, _ := hex.DecodeString(bodyHex)
	return BuildFrame(0, seq, CmdRemoveSubscription, body)
}

// subscriptionZeroPadLen is the width, in bytes, of the reserved region
// between the header and the tx channel/device name strings in an
// add-subscription body (spec.md §4.A: "past a 34-byte zero-padded region").
const subscriptionZeroPadLen = 34

// BuildAddSubscription builds a frame that subscribes rxChannel to the
// named tx channel on the named tx device.
func BuildAddSubscription(seq uint16, rxChannel uint8, txChannelName, txDeviceName string) []byte {
	rxHex := fmt.Sprintf("%02x", rxChannel)
	txChanHex := hex.EncodeToString([]byte(txChannelName))
	txDevHex := hex.EncodeToString([]byte(txDeviceName))

	txChanOffset := 52
	txDevOffset := 52 + len(txChannelName) + 1
	zeros := make([]byte, subscriptionZeroPadLen*2)
	for i := range zeros {
		zeros[i] = '0'
	}

	bodyHex := fmt.Sprintf(
		"0000020100%s00%02x00%02x%s%s00%s00",
		rxHex, txChanOffset, txDevOffset, string(zeros), txChanHex, txDevHex,
	)
	body, _ := hex.DecodeString(bodyHex)
	return BuildFrame(0, seq, CmdAddSubscription, body)
}

// BuildSetLatency builds a frame requesting a latency change. latencyMS is
// in milliseconds and is converted to the wire's microsecond encoding by
// multiplying by 1000, per spec.md §4.A (see DESIGN.md Open Question 1 for
// why this differs from the Python reference implementation's arithmetic).
func BuildSetLatency(seq uint16, latencyMS int) []byte {
	latencyUS := latencyMS * 1000
	latencyHex := fmt.Sprintf("%06x", latencyUS)
	bodyHex := fmt.Sprintf(
		"00000503820500200211001083010024821983018302830600%s00%s",
		latencyHex, latencyHex,
	)
	body, _ := hex.DecodeString(bodyHex)
	return BuildFrame(0, seq, CmdSetLatency, body)
}
