package core

// Command channel: byte-at-a-time line framing in the receive interrupt,
// dispatch from the scheduler loop.
//
// The interrupt is the only writer of the framing buffer. A completed line
// is copied into a single-slot mailbox and published with the ready flag;
// the loop copies it out and clears the flag. A line completed while the
// slot is still full is dropped.

import (
	"errors"
	"sync/atomic"

	"marblesort/protocol"
)

// Receiver re-enables single-byte reception after each received byte
type Receiver interface {
	Rearm()
}

// ChannelStats counts what the channel did with received lines
type ChannelStats struct {
	Dispatched uint32 // frames handed to the registry
	Overflows  uint32 // frames discarded for exceeding the buffer
	Unknown    uint32 // frames with an unregistered code
	Busy       uint32 // frames dropped while the mailbox was full
}

// CommandChannel frames received bytes into command lines
type CommandChannel struct {
	rx       Receiver
	registry *CommandRegistry

	// Receive interrupt side
	buf [FrameCapacity]byte
	idx int

	// Mailbox, owned by whoever the ready flag says
	mailbox    [FrameCapacity]byte
	mailboxLen int
	ready      atomic.Bool

	dispatched atomic.Uint32
	overflows  atomic.Uint32
	unknown    atomic.Uint32
	busy       atomic.Uint32
}

// NewCommandChannel creates a channel dispatching into registry
func NewCommandChannel(rx Receiver, registry *CommandRegistry) *CommandChannel {
	return &CommandChannel{rx: rx, registry: registry}
}

// HandleByte is the receive interrupt handler. It always re-arms the
// receiver before returning.
func (c *CommandChannel) HandleByte(b byte) {
	defer c.rearm()

	switch {
	case b == protocol.LineEnd:
		c.buf[c.idx] = 0
		c.publish(c.buf[:c.idx])
		c.idx = 0

	case c.idx >= FrameCapacity-1:
		// Full without a newline: drop the whole line
		c.idx = 0
		c.overflows.Add(1)
		RecordEvent(EvtOverflow, 0, FrameCapacity)

	case b != protocol.CarriageReturn:
		c.buf[c.idx] = b
		c.idx++
	}
}

func (c *CommandChannel) rearm() {
	if c.rx != nil {
		c.rx.Rearm()
	}
}

// publish hands a completed line to the loop
func (c *CommandChannel) publish(line []byte) {
	if c.ready.Load() {
		c.busy.Add(1)
		RecordEvent(EvtBusy, 0, int32(len(line)))
		return
	}
	c.mailboxLen = copy(c.mailbox[:], line)
	c.ready.Store(true)
}

// Ready reports whether a complete line is waiting for dispatch
func (c *CommandChannel) Ready() bool {
	return c.ready.Load()
}

// Discard drops a line waiting in the mailbox
func (c *CommandChannel) Discard() {
	c.ready.Store(false)
}

// Process dispatches the waiting line, if any. Called from the scheduler
// loop. Returns true if a line was consumed.
func (c *CommandChannel) Process() bool {
	if !c.ready.Load() {
		return false
	}

	var line [FrameCapacity]byte
	n := copy(line[:], c.mailbox[:c.mailboxLen])
	c.ready.Store(false)

	c.dispatch(line[:n])
	return true
}

// dispatch decodes "<code><int>" and runs the handler. Errors are
// swallowed: the sender never gets a reply.
func (c *CommandChannel) dispatch(line []byte) {
	var code byte
	if len(line) > 0 {
		code = protocol.NormalizeCode(line[0])
	}
	var arg int32
	if len(line) > 1 {
		arg = protocol.ParseArg(line[1:])
	}

	err := c.registry.Dispatch(code, arg)
	switch {
	case errors.Is(err, ErrUnknownCommand):
		c.unknown.Add(1)
		RecordEvent(EvtUnknown, code, arg)
	case err != nil:
		DebugPrintln("[CMD] " + string(rune(code)) + " failed: " + err.Error())
	default:
		c.dispatched.Add(1)
		RecordEvent(EvtCommand, code, arg)
	}
}

// Stats returns a snapshot of the channel counters
func (c *CommandChannel) Stats() ChannelStats {
	return ChannelStats{
		Dispatched: c.dispatched.Load(),
		Overflows:  c.overflows.Load(),
		Unknown:    c.unknown.Load(),
		Busy:       c.busy.Load(),
	}
}
