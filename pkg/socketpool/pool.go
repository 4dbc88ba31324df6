package socketpool

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/netaudioctl/netaudio-go/pkg/model"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

// Timeout tiers, grounded on socket_manager.py: per-service-control
// sockets get a generous 1s timeout, well-known-port sockets get a tight
// 10ms timeout (these are polled opportunistically, not waited on), and
// on-demand metering sockets get 100ms.
const (
	serviceTimeout = 1 * time.Second
	portTimeout    = 10 * time.Millisecond
	meterTimeout   = 100 * time.Millisecond
)

// WellKnownPorts are dialed eagerly for every device regardless of which
// services it advertised, matching socket_manager.py's create_port_sockets.
var WellKnownPorts = []int{
	wire.PortDeviceInfo,
	wire.PortDeviceSettings,
	wire.PortDeviceControl,
}

// Pool is a device's set of connected UDP sockets, keyed by remote port.
// A *Pool satisfies io.Closer, so model.Device can hold it without
// importing this package.
type Pool struct {
	mu       sync.Mutex
	ipv4     net.IP
	sockets  map[int]*Socket
}

// NewPool creates an empty socket pool for a device at the given address.
func NewPool(ipv4 net.IP) *Pool {
	return &Pool{ipv4: ipv4, sockets: make(map[int]*Socket)}
}

// CreateServiceSockets dials one connected UDP socket per advertised
// control service (skipping the per-channel service, which carries no
// control traffic of its own), per socket_manager.py's
// create_service_sockets.
func (p *Pool) CreateServiceSockets(services []*model.ServiceEndpoint) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, svc := range services {
		if svc.Type == model.ServiceChannel {
			continue
		}
		if _, exists := p.sockets[svc.Port]; exists {
			continue
		}
		sock, err := p.dial(svc.Port, serviceTimeout)
		if err != nil {
			return fmt.Errorf("socketpool: dial service %s port %d: %w", svc.InstanceName, svc.Port, err)
		}
		p.sockets[svc.Port] = sock
	}
	return nil
}

// CreatePortSockets dials one connected UDP socket per well-known port,
// per socket_manager.py's create_port_sockets.
func (p *Pool) CreatePortSockets(ports []int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, port := range ports {
		if _, exists := p.sockets[port]; exists {
			continue
		}
		sock, err := p.dial(port, portTimeout)
		if err != nil {
			return fmt.Errorf("socketpool: dial port %d: %w", port, err)
		}
		p.sockets[port] = sock
	}
	return nil
}

func (p *Pool) dial(port int, timeout time.Duration) (*Socket, error) {
	conn, err := net.DialUDP("udp4", nil, &net.UDPAddr{IP: p.ipv4, Port: port})
	if err != nil {
		return nil, err
	}
	return &Socket{conn: conn, timeout: timeout}, nil
}

// GetOrCreateSocket returns the socket for a local metering port, binding
// a fresh one on first use with the 100ms metering timeout
// (socket_manager.py's get_or_create_socket).
func (p *Pool) GetOrCreateSocket(localIP net.IP, port int) (*Socket, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if sock, exists := p.sockets[port]; exists {
		return sock, nil
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: localIP, Port: port})
	if err != nil {
		return nil, fmt.Errorf("socketpool: bind metering port %d: %w", port, err)
	}
	sock := &Socket{conn: conn, timeout: meterTimeout}
	p.sockets[port] = sock
	return sock, nil
}

// Socket returns the existing socket for a port, if any.
func (p *Pool) Socket(port int) (*Socket, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	sock, ok := p.sockets[port]
	return sock, ok
}

// Close closes every socket in the pool.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for port, sock := range p.sockets {
		if err := sock.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("socketpool: close port %d: %w", port, err)
		}
	}
	p.sockets = make(map[int]*Socket)
	return firstErr
}
