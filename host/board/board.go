// Package board is the host-side client for the sorter firmware. It
// writes command lines and reads back detection telemetry.
package board

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"marblesort/host/serial"
	"marblesort/protocol"
)

var (
	ErrUnknownCode = errors.New("board: unknown command code")
	ErrClosed      = errors.New("board: connection closed")
)

// Gate positions in degrees
const (
	GateClosed uint16 = 65
	GateOpen   uint16 = 25
)

// Board represents a connection to the sorter
type Board struct {
	port io.ReadWriteCloser
	log  *zap.Logger

	mu     sync.Mutex // serializes writes
	closed bool
	sent   int
}

// New wraps an already open port. A nil logger discards logs.
func New(port io.ReadWriteCloser, log *zap.Logger) *Board {
	if log == nil {
		log = zap.NewNop()
	}
	return &Board{port: port, log: log}
}

// Open opens the serial device described by cfg
func Open(cfg *serial.Config, log *zap.Logger) (*Board, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	// Drop whatever the firmware printed before we attached
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to flush %s: %w", cfg.Device, err)
	}
	return New(port, log), nil
}

// Close closes the connection
func (b *Board) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.port.Close()
}

// Send writes one command line. The firmware never replies, so a nil
// error only means the bytes left the host.
func (b *Board) Send(code byte, arg int32) error {
	code = protocol.NormalizeCode(code)
	switch code {
	case protocol.CodeHorizontal, protocol.CodeVertical, protocol.CodeLeft,
		protocol.CodeRight, protocol.CodeServo:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}

	line := protocol.AppendCommand(make([]byte, 0, 16), code, arg)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if _, err := b.port.Write(line); err != nil {
		return fmt.Errorf("failed to send %q: %w", line[:len(line)-1], err)
	}
	b.sent++
	b.log.Debug("sent command", zap.ByteString("line", line[:len(line)-1]))
	return nil
}

// Sent returns the number of command lines written
func (b *Board) Sent() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sent
}

// Horizontal moves the carriage by steps (positive is right)
func (b *Board) Horizontal(steps int32) error {
	return b.Send(protocol.CodeHorizontal, steps)
}

// Vertical moves both lifts by steps (positive is up)
func (b *Board) Vertical(steps int32) error {
	return b.Send(protocol.CodeVertical, steps)
}

// Left moves the left lift only
func (b *Board) Left(steps int32) error {
	return b.Send(protocol.CodeLeft, steps)
}

// Right moves the right lift only
func (b *Board) Right(steps int32) error {
	return b.Send(protocol.CodeRight, steps)
}

// Servo sets the gate angle in degrees
func (b *Board) Servo(angle uint16) error {
	return b.Send(protocol.CodeServo, int32(angle))
}

// OpenGate drops the carried marble
func (b *Board) OpenGate() error {
	return b.Servo(GateOpen)
}

// CloseGate returns the gate to its transport position
func (b *Board) CloseGate() error {
	return b.Servo(GateClosed)
}

// Stop cancels both motions and closes the gate. This is the software
// counterpart of the stop button; it goes through the command queue, so
// a line still in flight on the link runs first.
func (b *Board) Stop() error {
	var errs []error
	errs = append(errs, b.Horizontal(0))
	errs = append(errs, b.Vertical(0))
	errs = append(errs, b.CloseGate())
	if err := errors.Join(errs...); err != nil {
		return err
	}
	b.log.Info("stop sent")
	return nil
}
