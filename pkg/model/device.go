package model

import (
	"io"
	"net"
	"sync"
	"time"
)

// OpaqueStatus is a captured-but-unparsed multicast status blob (spec.md
// §4.G, §9 Open Question #2: lock/codec/interface/clocking/upgrade status
// messages are captured whole rather than field-parsed).
type OpaqueStatus struct {
	CommandID uint16
	Timestamp time.Time
	Payload   []byte
}

// Device is the in-memory representation of a discovered device: its
// identity, its channels, its subscriptions, and its socket pool.
//
// Invariants (spec.md §3): server name is immutable post-creation; IPv4
// is set at most once per lifecycle; channel counts and channel maps are
// monotonically filled by the enumerator and invalidated only on an
// observed routing/change event.
type Device struct {
	mu sync.RWMutex

	serverName string // immutable

	ipv4 net.IP // set-once

	name         string
	manufacturer string
	modelID      string
	vendorModel  string
	mac          net.HardwareAddr
	sampleRate   uint32
	latencyNS    int64
	software     string

	services map[string]*ServiceEndpoint

	rxCountRaw uint8
	txCountRaw uint8
	rxCount    int
	txCount    int

	rxChannels map[uint8]*Channel
	txChannels map[uint8]*Channel

	subscriptions []Subscription

	opaqueStatuses map[uint16]OpaqueStatus

	lastSeen time.Time
	ttl      time.Duration

	err error

	// Pool is the device's socket pool (pkg/socketpool.Pool satisfies
	// io.Closer). It is opaque here to avoid an import cycle; callers
	// that need socket operations hold their own typed reference.
	pool io.Closer
}

// NewDevice creates a device identified by its immutable mDNS server name.
func NewDevice(serverName string) *Device {
	return &Device{
		serverName:     serverName,
		services:       make(map[string]*ServiceEndpoint),
		rxChannels:     make(map[uint8]*Channel),
		txChannels:     make(map[uint8]*Channel),
		opaqueStatuses: make(map[uint16]OpaqueStatus),
		lastSeen:       time.Now(),
	}
}

func (d *Device) ServerName() string { return d.serverName }

func (d *Device) IPv4() net.IP {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ipv4
}

// SetIPv4 sets the device's IPv4 address. It is a no-op once already set,
// matching the "set at most once per lifecycle" invariant.
func (d *Device) SetIPv4(ip net.IP) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ipv4 == nil {
		d.ipv4 = ip
	}
}

func (d *Device) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.name
}

func (d *Device) SetName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.name = name
}

func (d *Device) Manufacturer() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.manufacturer
}

func (d *Device) SetManufacturer(m string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.manufacturer = m
}

func (d *Device) ModelID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modelID
}

func (d *Device) SetModelID(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.modelID = id
}

func (d *Device) VendorModel() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.vendorModel
}

func (d *Device) SetVendorModel(m string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vendorModel = m
}

func (d *Device) MAC() net.HardwareAddr {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mac
}

func (d *Device) SetMAC(mac net.HardwareAddr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mac = mac
}

func (d *Device) SampleRate() uint32 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sampleRate
}

func (d *Device) SetSampleRate(rate uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sampleRate = rate
}

func (d *Device) LatencyNS() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.latencyNS
}

func (d *Device) SetLatencyNS(ns int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.latencyNS = ns
}

func (d *Device) Software() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.software
}

func (d *Device) SetSoftware(tag string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.software = tag
}

// Error returns the last error recorded during enumeration, if any.
func (d *Device) Error() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

// SetError records an error without aborting the caller (spec.md §4.E,
// §7: enumeration tolerates per-step failure and keeps partial state).
func (d *Device) SetError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

// Pool returns the device's socket pool handle, or nil if none is set.
func (d *Device) Pool() io.Closer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pool
}

// SetPool attaches a socket pool handle to the device.
func (d *Device) SetPool(pool io.Closer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pool = pool
}

// ClosePool closes the device's socket pool, if any (called on registry removal).
func (d *Device) ClosePool() error {
	d.mu.Lock()
	pool := d.pool
	d.pool = nil
	d.mu.Unlock()
	if pool == nil {
		return nil
	}
	return pool.Close()
}

// --- Service endpoints ---

// AddService attaches a discovered service endpoint, keyed by its
// instance name.
func (d *Device) AddService(ep *ServiceEndpoint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.services[ep.InstanceName] = ep
}

// RemoveService removes a service endpoint by instance name. It returns
// the number of service endpoints that remain.
func (d *Device) RemoveService(instanceName string) (remaining int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.services, instanceName)
	return len(d.services)
}

// Service returns a service endpoint by instance name.
func (d *Device) Service(instanceName string) (*ServiceEndpoint, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ep, ok := d.services[instanceName]
	return ep, ok
}

// Services returns all service endpoints.
func (d *Device) Services() []*ServiceEndpoint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	result := make([]*ServiceEndpoint, 0, len(d.services))
	for _, ep := range d.services {
		result = append(result, ep)
	}
	return result
}

// ServiceCount returns the number of discovered service endpoints.
func (d *Device) ServiceCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.services)
}

// --- Channel counts ---

// Counts returns the raw (pre-pagination-truncation) and working channel counts.
func (d *Device) Counts() (rxRaw, txRaw uint8, rxCount, txCount int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rxCountRaw, d.txCountRaw, d.rxCount, d.txCount
}

// SetCounts fills the channel counts from a channel-counts query response.
func (d *Device) SetCounts(rxRaw, txRaw uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rxCountRaw = rxRaw
	d.txCountRaw = txRaw
	d.rxCount = int(rxRaw)
	d.txCount = int(txRaw)
}

// --- Channels ---

// SetRXChannels replaces the rx-channel map and subscription list. Called
// by the enumerator after a full rx scan, or after an rx-change event
// invalidates and re-runs it (spec.md §4.E, §4.G).
func (d *Device) SetRXChannels(channels map[uint8]*Channel, subs []Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rxChannels = channels
	d.subscriptions = subs
}

// SetTXChannels replaces the tx-channel map.
func (d *Device) SetTXChannels(channels map[uint8]*Channel) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.txChannels = channels
}

// InvalidateRXChannels clears the rx-channel map and subscription list so
// the enumerator's rx step runs again (spec.md §4.G rx-change handling).
func (d *Device) InvalidateRXChannels() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rxChannels = make(map[uint8]*Channel)
	d.subscriptions = nil
}

// InvalidateTXChannels clears the tx-channel map.
func (d *Device) InvalidateTXChannels() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.txChannels = make(map[uint8]*Channel)
}

// RXChannel returns a receive channel by number.
func (d *Device) RXChannel(number uint8) (*Channel, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ch, ok := d.rxChannels[number]
	if !ok {
		return nil, ErrChannelNotFound
	}
	return ch, nil
}

// TXChannel returns a transmit channel by number.
func (d *Device) TXChannel(number uint8) (*Channel, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ch, ok := d.txChannels[number]
	if !ok {
		return nil, ErrChannelNotFound
	}
	return ch, nil
}

// RXChannels returns a snapshot slice of all rx channels.
func (d *Device) RXChannels() []*Channel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	result := make([]*Channel, 0, len(d.rxChannels))
	for _, ch := range d.rxChannels {
		result = append(result, ch)
	}
	return result
}

// TXChannels returns a snapshot slice of all tx channels.
func (d *Device) TXChannels() []*Channel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	result := make([]*Channel, 0, len(d.txChannels))
	for _, ch := range d.txChannels {
		result = append(result, ch)
	}
	return result
}

// RXChannelsEmpty reports whether the rx-channel map has been filled yet.
func (d *Device) RXChannelsEmpty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rxChannels) == 0
}

// TXChannelsEmpty reports whether the tx-channel map has been filled yet.
func (d *Device) TXChannelsEmpty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.txChannels) == 0
}

// --- Subscriptions ---

// Subscriptions returns a snapshot slice of the device's subscriptions.
func (d *Device) Subscriptions() []Subscription {
	d.mu.RLock()
	defer d.mu.RUnlock()
	result := make([]Subscription, len(d.subscriptions))
	copy(result, d.subscriptions)
	return result
}

// --- Opaque status blobs ---

// SetOpaqueStatus records a captured-but-unparsed multicast status blob.
func (d *Device) SetOpaqueStatus(status OpaqueStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opaqueStatuses[status.CommandID] = status
}

// GetOpaqueStatus returns a captured status blob by command id.
func (d *Device) GetOpaqueStatus(commandID uint16) (OpaqueStatus, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.opaqueStatuses[commandID]
	return s, ok
}

// --- Freshness ---

// LastSeen returns the last time the device was observed (discovery,
// heartbeat, or any multicast traffic).
func (d *Device) LastSeen() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastSeen
}

// Touch refreshes LastSeen and optionally extends the TTL (heartbeat
// handling extends it to 5s per spec.md §4.G; zero ttl leaves it unchanged).
func (d *Device) Touch(ttl time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastSeen = time.Now()
	if ttl > 0 {
		d.ttl = ttl
	}
}

// Stale reports whether the device's freshness TTL has elapsed.
func (d *Device) Stale(defaultTTL time.Duration) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ttl := d.ttl
	if ttl == 0 {
		ttl = defaultTTL
	}
	return time.Since(d.lastSeen) > ttl
}

// DeviceInfo is an immutable snapshot of a Device, safe to hand to
// external consumers without exposing the mutex (spec.md §9: "a builder +
// immutable snapshot for the device view").
type DeviceInfo struct {
	ServerName   string
	IPv4         net.IP
	Name         string
	Manufacturer string
	ModelID      string
	VendorModel  string
	MAC          net.HardwareAddr
	SampleRate   uint32
	LatencyNS    int64
	Software     string
	RXCountRaw   uint8
	TXCountRaw   uint8
	Services     []*ServiceEndpoint
	RXChannels   []ChannelInfo
	TXChannels   []ChannelInfo
	Subscriptions []Subscription
	Error        error
	LastSeen     time.Time
}

// Info returns an immutable snapshot of the device.
func (d *Device) Info() DeviceInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()

	services := make([]*ServiceEndpoint, 0, len(d.services))
	for _, ep := range d.services {
		services = append(services, ep)
	}

	rx := make([]ChannelInfo, 0, len(d.rxChannels))
	for _, ch := range d.rxChannels {
		rx = append(rx, ch.Info())
	}

	tx := make([]ChannelInfo, 0, len(d.txChannels))
	for _, ch := range d.txChannels {
		tx = append(tx, ch.Info())
	}

	subs := make([]Subscription, len(d.subscriptions))
	copy(subs, d.subscriptions)

	return DeviceInfo{
		ServerName:    d.serverName,
		IPv4:          d.ipv4,
		Name:          d.name,
		Manufacturer:  d.manufacturer,
		ModelID:       d.modelID,
		VendorModel:   d.vendorModel,
		MAC:           d.mac,
		SampleRate:    d.sampleRate,
		LatencyNS:     d.latencyNS,
		Software:      d.software,
		RXCountRaw:    d.rxCountRaw,
		TXCountRaw:    d.txCountRaw,
		Services:      services,
		RXChannels:    rx,
		TXChannels:    tx,
		Subscriptions: subs,
		Error:         d.err,
		LastSeen:      d.lastSeen,
	}
}
