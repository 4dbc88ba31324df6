package multicast

import (
	"context"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/netaudioctl/netaudio-go/pkg/log"
	"github.com/netaudioctl/netaudio-go/pkg/registry"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

// maxDatagramSize matches pkg/socketpool's unicast receive buffer; the
// multicast frames observed here (status/heartbeat/metering) are all
// smaller than a single Dante/mDNS datagram in practice.
const maxDatagramSize = 2048

// Config configures the three multicast groups the monitor joins
// (spec.md §6).
type Config struct {
	// Group is the multicast group address shared by all three ports.
	// Default: wire.MulticastGroup (224.0.0.231).
	Group string

	// DeviceInfoPort carries status frames (versions, make/model,
	// sample-rate, encoding, clocking, rx/tx change, etc).
	// Default: wire.MulticastDeviceInfoPort (8702).
	DeviceInfoPort int

	// MeteringPort carries per-channel volume-level frames.
	// Default: wire.DefaultMeteringPort (8751).
	MeteringPort int

	// HeartbeatPort carries device keepalive frames.
	// Default: wire.DefaultHeartbeatPort (8703).
	HeartbeatPort int

	// Interface restricts group membership to one network interface by
	// name. Empty string joins on all interfaces (net.ListenMulticastUDP's
	// default when ifi is nil).
	Interface string
}

// DefaultConfig returns the monitor's default group/port configuration.
func DefaultConfig() Config {
	return Config{
		Group:          wire.MulticastGroup,
		DeviceInfoPort: wire.MulticastDeviceInfoPort,
		MeteringPort:   wire.DefaultMeteringPort,
		HeartbeatPort:  wire.DefaultHeartbeatPort,
	}
}

// Monitor joins the device-info, metering, and heartbeat multicast groups
// and dispatches every received datagram into a registry.Registry
// (spec.md §4.G).
type Monitor struct {
	config Config
	reg    *registry.Registry
	logger log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewMonitor creates a multicast monitor bound to the shared device
// registry. Re-enumeration after a routing-change event (spec.md §4.G)
// uses each affected device's own socket pool, not a shared enumerator.
func NewMonitor(config Config, reg *registry.Registry, logger log.Logger) *Monitor {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Monitor{config: config, reg: reg, logger: logger}
}

// group identifies one of the three multicast groups this package listens
// on, distinguishing device-info and metering frames that otherwise share
// the same multicast address (spec.md §4.G dispatches partly on port, not
// group address alone).
type group int

const (
	groupDeviceInfo group = iota
	groupMetering
	groupHeartbeat
)

// Run joins all three multicast groups and blocks, dispatching datagrams
// as they arrive, until ctx is cancelled or Stop is called. It returns nil
// once all three listener goroutines have exited.
func (m *Monitor) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()

	listeners := []struct {
		kind group
		port int
	}{
		{groupDeviceInfo, m.config.DeviceInfoPort},
		{groupMetering, m.config.MeteringPort},
		{groupHeartbeat, m.config.HeartbeatPort},
	}

	var wg sync.WaitGroup
	for _, l := range listeners {
		conn, err := m.joinGroup(l.port)
		if err != nil {
			m.logger.Log(log.Event{
				Direction: log.DirectionIn,
				Layer:     log.LayerSocket,
				Category:  log.CategoryError,
				Error:     &log.ErrorEventData{Message: err.Error()},
			})
			continue
		}
		wg.Add(1)
		go func(kind group, conn *net.UDPConn) {
			defer wg.Done()
			m.listen(ctx, kind, conn)
		}(l.kind, conn)
	}
	wg.Wait()
	return nil
}

// Stop cancels any in-progress Run, closing all three listener sockets.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *Monitor) joinGroup(port int) (*net.UDPConn, error) {
	var ifi *net.Interface
	if m.config.Interface != "" {
		found, err := net.InterfaceByName(m.config.Interface)
		if err != nil {
			return nil, err
		}
		ifi = found
	}
	addr := &net.UDPAddr{IP: net.ParseIP(m.config.Group), Port: port}
	return net.ListenMulticastUDP("udp4", ifi, addr)
}

// listen runs one group's blocking read loop, the goroutine spec.md §5
// calls an "OS-thread-per-multicast-socket" (a goroutine parked on a
// blocking syscall already gets its own OS thread from Go's scheduler).
func (m *Monitor) listen(ctx context.Context, kind group, conn *net.UDPConn) {
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buf := make([]byte, maxDatagramSize)
	for {
		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		frame := make([]byte, n)
		copy(frame, buf[:n])
		m.handleDatagram(kind, src, frame)
	}
}

// handleDatagram implements spec.md §4.G steps 1-2: identify the source
// device by IPv4 (dropping unattributed datagrams) and extract the
// command id, then dispatch.
func (m *Monitor) handleDatagram(kind group, src *net.UDPAddr, frame []byte) {
	if src == nil {
		return
	}
	device, ok := m.reg.GetByIPv4(src.IP.String())
	if !ok {
		return
	}

	cmdID, err := wire.Dialect2CommandID(frame)
	if err != nil {
		return
	}

	traceID := uuid.New().String()
	m.logger.Log(log.Event{
		TraceID:    traceID,
		ServerName: device.ServerName(),
		RemoteAddr: src.String(),
		Direction:  log.DirectionIn,
		Layer:      log.LayerWire,
		Category:   log.CategoryCommand,
		Frame:      &log.FrameEvent{Size: len(frame), Data: frame},
	})

	dispatch(dispatchContext{
		device:  device,
		logger:  m.logger,
		traceID: traceID,
		kind:    kind,
	}, cmdID, frame)
}
