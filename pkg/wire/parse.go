package wire

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// ParseDeviceName decodes a device-name query response: bytes 10..end-1
// are the ASCII name; the trailing byte is padding and is stripped.
func ParseDeviceName(frame []byte) (string, error) {
	if len(frame) < 11 {
		return "", fmt.Errorf("%w: device-name response too short", ErrInvalidFrame)
	}
	name := frame[10 : len(frame)-1]
	return strings.TrimRight(string(name), "\x00"), nil
}

// ParseChannelCounts decodes a channel-counts query response. Byte 13
// holds the tx count, byte 15 holds the rx count.
func ParseChannelCounts(frame []byte) (tx, rx uint8, err error) {
	if len(frame) < 16 {
		return 0, 0, fmt.Errorf("%w: channel-count response too short", ErrInvalidFrame)
	}
	return frame[13], frame[15], nil
}

// RxChannelRecord is one parsed entry from an rx-channels response page.
type RxChannelRecord struct {
	ChannelNumber      uint8
	RxChannelName      string
	TxChannelName      string
	TxDeviceName       string
	RxChannelStatus    uint16
	SubscriptionStatus uint16
}

const rxHeaderLen = 12 // 24 hex chars
const rxRecordLen = 20 // 40 hex chars

// ParseRxChannels decodes up to min(rxCountRaw, 16) rx-channel records
// from a single rx-channels response page. It also returns a sample rate
// discovered as a side effect of the first record, if the frame encodes
// one (nil otherwise) — see spec.md §4.E and DESIGN.md for why this is a
// side effect rather than an independent query.
func ParseRxChannels(response []byte, rxCountRaw int) ([]RxChannelRecord, *uint32, error) {
	if len(response) < rxHeaderLen {
		return nil, nil, fmt.Errorf("%w: rx-channels response too short", ErrInvalidFrame)
	}

	count := rxCountRaw
	if count > 16 {
		count = 16
	}

	var records []RxChannelRecord
	var sampleRate *uint32

	for i := 0; i < count; i++ {
		start := rxHeaderLen + i*rxRecordLen
		if start+rxRecordLen > len(response) {
			break
		}
		rec := response[start : start+rxRecordLen]

		var fields [8]uint16
		for f := 0; f < 8; f++ {
			fields[f] = binary.BigEndian.Uint16(rec[f*2 : f*2+2])
		}

		channelNumber := fields[0]
		channelOffset := fields[3]
		deviceOffset := fields[4]
		rxChannelOffset := fields[5]
		rxStatus := fields[6]
		subStatus := fields[7]

		rxChannelName := ExtractLabel(response, int(rxChannelOffset))
		txDeviceName := ExtractLabel(response, int(deviceOffset))

		var txChannelName string
		if channelOffset != 0 {
			txChannelName = ExtractLabel(response, int(channelOffset))
		} else {
			txChannelName = rxChannelName
		}

		if i == 0 && deviceOffset != 0 {
			byteOffset := int(fields[2]) + 1
			if byteOffset >= 0 && byteOffset+3 <= len(response) {
				v := uint32(response[byteOffset])<<16 | uint32(response[byteOffset+1])<<8 | uint32(response[byteOffset+2])
				if v != 0 {
					sampleRate = &v
				}
			}
		}

		records = append(records, RxChannelRecord{
			ChannelNumber:      uint8(channelNumber),
			RxChannelName:      rxChannelName,
			TxChannelName:      txChannelName,
			TxDeviceName:       txDeviceName,
			RxChannelStatus:    rxStatus,
			SubscriptionStatus: subStatus,
		})
	}

	return records, sampleRate, nil
}

const txHeaderLen = 12
const txFriendlyRecordLen = 6 // 12 hex chars
const txPlainRecordLen = 8    // 16 hex chars

// ParseTxFriendlyNames decodes the friendly-name overlay page (command
// 0x2010) into a channel-number -> friendly-name map.
func ParseTxFriendlyNames(response []byte, txCountRaw int) (map[uint16]string, error) {
	if len(response) < txHeaderLen {
		return nil, fmt.Errorf("%w: tx friendly-names response too short", ErrInvalidFrame)
	}

	count := txCountRaw
	if count > 32 {
		count = 32
	}

	names := make(map[uint16]string)
	for i := 0; i < count; i++ {
		start := txHeaderLen + i*txFriendlyRecordLen
		if start+txFriendlyRecordLen > len(response) {
			break
		}
		rec := response[start : start+txFriendlyRecordLen]
		channelNumber := binary.BigEndian.Uint16(rec[2:4])
		nameOffset := binary.BigEndian.Uint16(rec[4:6])

		if name := ExtractLabel(response, int(nameOffset)); name != "" {
			names[channelNumber] = name
		}
	}
	return names, nil
}

// TxChannelRecord is one parsed entry from a tx-channels response page.
type TxChannelRecord struct {
	ChannelNumber uint16
	ChannelGroup  uint16
	Name          string
}

// TxPageResult is the result of parsing a single plain tx-channels page.
type TxPageResult struct {
	Records             []TxChannelRecord
	SampleRate           uint32 // 0 if not discovered on this page
	HasDisabledChannels  bool   // terminate outer page loop (spec.md §4.E)
}

// ParseTxChannelsPage decodes the plain tx-channels page (command 0x2000),
// applying the two pagination-termination heuristics from spec.md §4.E:
// scanning stops at the first entry whose channel-group differs from the
// page's first entry (the remaining slots are disabled), and the page
// loop stops entirely once the page's hex body encodes the known sample
// rate twice. knownSampleRate may be 0 if no sample rate has been observed
// yet (see DESIGN.md Open Question resolution 2: the heuristic is then
// simply not applied, matching the pessimism spec.md documents).
func ParseTxChannelsPage(response []byte, txCountRaw int, knownSampleRate uint32) (TxPageResult, error) {
	var result TxPageResult
	if len(response) < txHeaderLen {
		return result, fmt.Errorf("%w: tx-channels response too short", ErrInvalidFrame)
	}

	count := txCountRaw
	if count > 32 {
		count = 32
	}

	if knownSampleRate != 0 {
		sampleRateHex := fmt.Sprintf("%06x", knownSampleRate)
		hexBody := fmt.Sprintf("%x", response)
		if strings.Count(hexBody, sampleRateHex) == 2 {
			result.HasDisabledChannels = true
		}
	}

	var firstGroup uint16
	haveFirst := false

	for i := 0; i < count; i++ {
		start := txHeaderLen + i*txPlainRecordLen
		if start+txPlainRecordLen > len(response) {
			break
		}
		rec := response[start : start+txPlainRecordLen]

		channelNumber := binary.BigEndian.Uint16(rec[0:2])
		channelGroup := binary.BigEndian.Uint16(rec[4:6])
		nameOffset := binary.BigEndian.Uint16(rec[6:8])

		if i == 0 {
			firstGroup = channelGroup
			haveFirst = true

			groupOffsetField := binary.BigEndian.Uint16(rec[4:6])
			byteOffset := int(groupOffsetField) + 1
			if byteOffset >= 0 && byteOffset+3 <= len(response) {
				v := uint32(response[byteOffset])<<16 | uint32(response[byteOffset+1])<<8 | uint32(response[byteOffset+2])
				if v != 0 {
					result.SampleRate = v
				}
			}
		}

		if haveFirst && channelGroup != firstGroup {
			break // disabled slots; stop reading this page
		}

		result.Records = append(result.Records, TxChannelRecord{
			ChannelNumber: channelNumber,
			ChannelGroup:  channelGroup,
			Name:          ExtractLabel(response, int(nameOffset)),
		})
	}

	return result, nil
}
