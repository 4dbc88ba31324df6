package wire

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildRxRecord(channelNumber, reserved, sampleRateOffsetField, txChanOffset, txDevOffset, rxChanOffset, rxStatus, subStatus uint16) []byte {
	buf := make([]byte, rxRecordLen)
	fields := []uint16{channelNumber, reserved, sampleRateOffsetField, txChanOffset, txDevOffset, rxChanOffset, rxStatus, subStatus}
	for i, f := range fields {
		binary.BigEndian.PutUint16(buf[i*2:i*2+2], f)
	}
	return buf
}

// S3: get_receivers(page=0) on avio-usb-2 -> two rx channels both bound to
// tx channel mic-mix-high@lx-dante, rx-status 257, sub-status 9.
func TestParseRxChannels_S3(t *testing.T) {
	header := make([]byte, rxHeaderLen)
	frame := append([]byte{}, header...)

	// label region appended after the two records; offsets point into it.
	record1 := buildRxRecord(1, 0, 0, 0 /* same as rx name */, 0 /* no tx device label */, 60, 257, 9)
	record2 := buildRxRecord(2, 0, 0, 0, 0, 80, 257, 9)
	frame = append(frame, record1...)
	frame = append(frame, record2...)

	for len(frame) < 60 {
		frame = append(frame, 0x00)
	}
	frame = append(frame, []byte("mic-mix-high\x00")...)
	for len(frame) < 80 {
		frame = append(frame, 0x00)
	}
	frame = append(frame, []byte("mic-mix-high\x00")...)

	records, _, err := ParseRxChannels(frame, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		require.Equal(t, "mic-mix-high", r.TxChannelName)
		require.Equal(t, uint16(257), r.RxChannelStatus)
		require.Equal(t, uint16(9), r.SubscriptionStatus)
	}
}

func TestParseRxChannels_SelfReferenceKeptLiteral(t *testing.T) {
	header := make([]byte, rxHeaderLen)
	frame := append([]byte{}, header...)
	record := buildRxRecord(1, 0, 0, 0, 40, 50, 0, 4)
	frame = append(frame, record...)
	for len(frame) < 40 {
		frame = append(frame, 0x00)
	}
	frame = append(frame, []byte(".\x00")...)
	for len(frame) < 50 {
		frame = append(frame, 0x00)
	}
	frame = append(frame, []byte("rx-1\x00")...)

	records, _, err := ParseRxChannels(frame, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	// wire layer reports the literal "."; self-reference unfolding to the
	// device's own human name happens one layer up, in pkg/enumerate.
	require.Equal(t, ".", records[0].TxDeviceName)
}

func TestParseTxChannelsPage_TerminatesOnChannelGroupMismatch(t *testing.T) {
	header := make([]byte, txHeaderLen)
	frame := append([]byte{}, header...)

	rec := func(num, status, group, offset uint16) []byte {
		b := make([]byte, txPlainRecordLen)
		binary.BigEndian.PutUint16(b[0:2], num)
		binary.BigEndian.PutUint16(b[2:4], status)
		binary.BigEndian.PutUint16(b[4:6], group)
		binary.BigEndian.PutUint16(b[6:8], offset)
		return b
	}

	frame = append(frame, rec(1, 0, 5, 0)...)
	frame = append(frame, rec(2, 0, 5, 0)...)
	frame = append(frame, rec(3, 0, 9, 0)...) // disabled slot: group differs
	frame = append(frame, rec(4, 0, 9, 0)...)

	result, err := ParseTxChannelsPage(frame, 4, 0)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
}

func TestParseTxChannelsPage_SampleRateDoubledStopsPaging(t *testing.T) {
	header := make([]byte, txHeaderLen)
	frame := append([]byte{}, header...)
	rec := make([]byte, txPlainRecordLen)
	binary.BigEndian.PutUint16(rec[0:2], 1)
	binary.BigEndian.PutUint16(rec[4:6], 0) // group/offset field doubles as sample-rate pointer at index 0
	frame = append(frame, rec...)
	frame = append(frame, 0x00) // byte at offset+1 region for sample rate
	frame = append(frame, []byte{0x00, 0xbb, 0x80}...)
	// embed the sample rate hex a second time elsewhere in the body to
	// trigger the "has disabled channels" heuristic
	frame = append(frame, []byte{0x00, 0xbb, 0x80}...)

	result, err := ParseTxChannelsPage(frame, 1, 48000)
	require.NoError(t, err)
	require.True(t, result.HasDisabledChannels)
}
