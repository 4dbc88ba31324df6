package socketpool

import (
	"net"
	"sync"
	"time"
)

// maxDatagramSize is the receive buffer size used throughout (socket_manager.py /
// command.py use a 2048-byte recvfrom buffer).
const maxDatagramSize = 2048

// Socket wraps a single UDP socket and the read timeout it was created
// with, mirroring the teacher's transport.ClientConn Send/Receive split
// (separate locks, deadline-based timeout) adapted to a connectionless
// datagram socket.
type Socket struct {
	conn    *net.UDPConn
	timeout time.Duration

	writeMu sync.Mutex
	readMu  sync.Mutex
}

// Send writes a single datagram.
func (s *Socket) Send(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err := s.conn.Write(data)
	return err
}

// Receive reads a single datagram, applying this socket's configured
// timeout. It returns the raw net.Error on timeout so callers can
// classify it (executor.Executor translates this into wire.ErrTimeout).
func (s *Socket) Receive() ([]byte, error) {
	data, _, err := s.ReceiveFrom()
	return data, err
}

// ReceiveFrom reads a single datagram and also reports its source
// address, for callers on an unconnected (bound, not dialed) socket that
// need to filter replies by sender — the volume-metering listener in
// pkg/enumerate is the only current user.
func (s *Socket) ReceiveFrom() ([]byte, *net.UDPAddr, error) {
	s.readMu.Lock()
	defer s.readMu.Unlock()

	if s.timeout > 0 {
		s.conn.SetReadDeadline(time.Now().Add(s.timeout))
		defer s.conn.SetReadDeadline(time.Time{})
	}

	buf := make([]byte, maxDatagramSize)
	n, addr, err := s.conn.ReadFromUDP(buf)
	if err != nil {
		return nil, nil, err
	}
	return buf[:n], addr, nil
}

// Close closes the underlying socket.
func (s *Socket) Close() error {
	return s.conn.Close()
}
