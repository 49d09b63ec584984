package board

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"marblesort/protocol"
)

// idleDelay is how long Monitor waits after a read returned nothing
const idleDelay = 10 * time.Millisecond

// TelemetryFunc receives each decoded detection event
type TelemetryFunc func(protocol.Telemetry)

// Monitor reads the link until ctx is done, calling fn for every
// telemetry line. Other lines are logged at debug level and dropped.
// Partial lines are kept across reads.
func (b *Board) Monitor(ctx context.Context, fn TelemetryFunc) error {
	var pending []byte
	chunk := make([]byte, 256)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := b.port.Read(chunk)
		if n > 0 {
			pending = append(pending, chunk[:n]...)
			pending = b.drainLines(pending, fn)
		}

		switch {
		case err == nil && n > 0:
			continue
		case err == nil, errors.Is(err, io.EOF):
			// Read timeout on an idle link
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(idleDelay):
			}
		default:
			return err
		}
	}
}

// drainLines handles every complete line in buf and returns the rest
func (b *Board) drainLines(buf []byte, fn TelemetryFunc) []byte {
	for {
		i := bytes.IndexByte(buf, protocol.LineEnd)
		if i < 0 {
			break
		}
		line := string(bytes.TrimRight(buf[:i], "\r"))
		buf = buf[i+1:]

		t, err := protocol.ParseTelemetry(line)
		switch {
		case errors.Is(err, protocol.ErrNotTelemetry):
			if line != "" {
				b.log.Debug("firmware output", zap.String("line", line))
			}
		case err != nil:
			b.log.Warn("bad telemetry line", zap.String("line", line), zap.Error(err))
		default:
			b.log.Debug("telemetry", zap.Stringer("event", t))
			fn(t)
		}
	}

	// Partial line, copied out of the read buffer
	return append([]byte(nil), buf...)
}
