package wire

// Dialect-1 (audio-routing-control) command ids, bytes 6..7 of the frame.
const (
	CmdChannelCount          uint16 = 0x1000
	CmdDeviceName            uint16 = 0x1002
	CmdSetOrResetDeviceName  uint16 = 0x1001
	CmdDeviceInfo            uint16 = 0x1003
	CmdRxChannels            uint16 = 0x3000
	CmdSetOrResetRxChannel   uint16 = 0x3001
	CmdAddSubscription       uint16 = 0x3010
	CmdRemoveSubscription    uint16 = 0x3014
	CmdTxChannels            uint16 = 0x2000
	CmdTxChannelsFriendly    uint16 = 0x2010
	CmdSetOrResetTxChannel   uint16 = 0x2013
	CmdSetLatency            uint16 = 0x1101
)

// Dialect-1 framing magic.
const Dialect1Magic byte = 0x27

// Dialect-2 (device-settings/device-info) framing magic.
const Dialect2Magic uint16 = 0xffff

// Well-known UDP ports the dialect-2 frames are sent to or received from.
const (
	PortDeviceInfo     = 8702
	PortDeviceSettings = 8700
	PortDeviceControl  = 8800
)

// Default multicast groups/ports for the monitor (spec.md §6).
const (
	MulticastGroup          = "224.0.0.231"
	MulticastDeviceInfoPort = PortDeviceInfo
	DefaultMeteringPort     = 8751
	DefaultHeartbeatPort    = 8703
)

// Dialect-2 command/status ids observed on incoming frames (bytes 26..28).
// Named per spec.md §4.G; exact numeric values are this system's own
// assignment since original_source's const.py (the Python enum source)
// was not retrievable — the byte offsets and parse behavior it implies
// (make/model at 76/204, versions at 43/88) are preserved exactly, and
// these ids are used only for our own dispatch switch in pkg/multicast.
const (
	StatusVersions           uint16 = 0x0001
	StatusMakeModel          uint16 = 0x0002
	StatusSampleRate         uint16 = 0x0003
	StatusEncoding           uint16 = 0x0004
	StatusClocking           uint16 = 0x0005
	StatusInterop            uint16 = 0x0006
	StatusSubscriptionChange uint16 = 0x0007
	StatusRxChange           uint16 = 0x0008
	StatusMetering           uint16 = 0x00e0 // 224 decimal, per original_source comment
	StatusHeartbeat          uint16 = 0x00ff
	StatusLock               uint16 = 0x0009
	StatusCodec              uint16 = 0x000a
	StatusInterface          uint16 = 0x000b
	StatusUpgrade            uint16 = 0x000c
	StatusAES67              uint16 = 0x000d
	StatusTxFlowChange       uint16 = 0x000e
	StatusRoutingDeviceChange uint16 = 0x000f
)

// Vendor magic string "Audinate", present in every dialect-2 frame.
var dialect2VendorMagic = []byte{0x41, 0x75, 0x64, 0x69, 0x6e, 0x61, 0x74, 0x65}

// zeroMAC is the default destination-MAC used when a caller does not
// override it (spec.md §9 Open Question #3: default to zeros, overridable).
var zeroMAC = [6]byte{}

// fixtureTestMAC is the hard-coded vendor test MAC embedded literally in
// the aes67 command body; the sample-rate, gain and encoding bodies carry
// only its 52:54:00 prefix followed by zero bytes.
// It is not computed from any device; real devices accept it regardless
// of the destination MAC supplied, confirming Open Question #3.
var fixtureTestMAC = [6]byte{0x52, 0x54, 0x00, 0x38, 0x5e, 0xba}
