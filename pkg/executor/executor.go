package executor

import (
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/netaudioctl/netaudio-go/pkg/log"
	"github.com/netaudioctl/netaudio-go/pkg/socketpool"
	"github.com/netaudioctl/netaudio-go/pkg/wire"
)

// Executor sends a built frame to a device's socket pool and optionally
// waits for a single reply datagram, the Go counterpart of command.py's
// DanteCommand.send: resolve socket, send, optional single recvfrom,
// classify the failure mode rather than silently swallowing it.
type Executor struct {
	pool   *socketpool.Pool
	logger log.Logger
}

// New creates an Executor bound to a device's socket pool.
func New(pool *socketpool.Pool, logger log.Logger) *Executor {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Executor{pool: pool, logger: logger}
}

// Send transmits frame on the socket bound to port without waiting for a reply.
func (e *Executor) Send(port int, frame []byte) error {
	sock, ok := e.pool.Socket(port)
	if !ok {
		return fmt.Errorf("%w: port %d", ErrNoSocket, port)
	}

	traceID := uuid.New().String()
	if err := sock.Send(frame); err != nil {
		cerr := classifyError(err)
		e.logError(traceID, port, cerr, "send")
		return cerr
	}
	e.logger.Log(log.Event{
		Timestamp: time.Now(),
		TraceID:   traceID,
		Direction: log.DirectionOut,
		Layer:     log.LayerSocket,
		Category:  log.CategoryCommand,
		Frame:     &log.FrameEvent{Size: len(frame)},
	})
	return nil
}

// SendAndReceive transmits frame and waits for one reply datagram on the
// same socket, within the socket's configured timeout. A timed-out read
// returns wire.ErrTimeout; any other socket failure returns wire.ErrTransport.
func (e *Executor) SendAndReceive(port int, frame []byte) ([]byte, error) {
	sock, ok := e.pool.Socket(port)
	if !ok {
		return nil, fmt.Errorf("%w: port %d", ErrNoSocket, port)
	}

	traceID := uuid.New().String()
	start := time.Now()

	if err := sock.Send(frame); err != nil {
		cerr := classifyError(err)
		e.logError(traceID, port, cerr, "send")
		return nil, cerr
	}
	e.logger.Log(log.Event{
		Timestamp: start,
		TraceID:   traceID,
		Direction: log.DirectionOut,
		Layer:     log.LayerSocket,
		Category:  log.CategoryCommand,
		Frame:     &log.FrameEvent{Size: len(frame)},
	})

	resp, err := sock.Receive()
	if err != nil {
		cerr := classifyError(err)
		e.logError(traceID, port, cerr, "receive")
		return nil, cerr
	}

	elapsed := time.Since(start)
	e.logger.Log(log.Event{
		Timestamp: time.Now(),
		TraceID:   traceID,
		Direction: log.DirectionIn,
		Layer:     log.LayerSocket,
		Category:  log.CategoryCommand,
		Frame:     &log.FrameEvent{Size: len(resp)},
		Command:   &log.CommandEvent{ProcessingTime: &elapsed},
	})
	return resp, nil
}

func (e *Executor) logError(traceID string, port int, err error, context string) {
	e.logger.Log(log.Event{
		Timestamp: time.Now(),
		TraceID:   traceID,
		Direction: log.DirectionOut,
		Layer:     log.LayerSocket,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerSocket,
			Message: err.Error(),
			Context: fmt.Sprintf("%s port %d", context, port),
		},
	})
}

func classifyError(err error) error {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return fmt.Errorf("%w: %v", wire.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", wire.ErrTransport, err)
}
