package protocol

import (
	"errors"
	"strconv"
	"strings"
)

// EventKind names the sensor that produced a telemetry line
type EventKind string

const (
	EventIn  EventKind = "IN"  // marble passed the entry sensor
	EventOut EventKind = "OUT" // marble passed the exit sensor
)

var (
	ErrNotTelemetry       = errors.New("protocol: not a telemetry line")
	ErrMalformedTelemetry = errors.New("protocol: malformed telemetry line")
)

// Telemetry is one detection event with the counter snapshot taken right
// after the event was counted.
type Telemetry struct {
	Kind    EventKind
	Entered uint32
	Exited  uint32
	Present uint32
}

// AppendTelemetry appends "#<kind>,<entered>,<exited>,<present>\n" to dst.
// It does not allocate when dst has room, so the firmware can format into a
// fixed scratch buffer.
func AppendTelemetry(dst []byte, t Telemetry) []byte {
	dst = append(dst, TelemetryPrefix)
	dst = append(dst, string(t.Kind)...)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, uint64(t.Entered), 10)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, uint64(t.Exited), 10)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, uint64(t.Present), 10)
	return append(dst, LineEnd)
}

// String renders the line without the trailing newline
func (t Telemetry) String() string {
	line := AppendTelemetry(nil, t)
	return string(line[:len(line)-1])
}

// ParseTelemetry decodes one received line. Lines that do not start with
// TelemetryPrefix return ErrNotTelemetry and should be skipped by callers.
func ParseTelemetry(line string) (Telemetry, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) == 0 || line[0] != TelemetryPrefix {
		return Telemetry{}, ErrNotTelemetry
	}

	fields := strings.Split(line[1:], ",")
	if len(fields) != 4 {
		return Telemetry{}, ErrMalformedTelemetry
	}

	t := Telemetry{Kind: EventKind(fields[0])}
	if t.Kind != EventIn && t.Kind != EventOut {
		return Telemetry{}, ErrMalformedTelemetry
	}

	counts := [3]*uint32{&t.Entered, &t.Exited, &t.Present}
	for i, field := range fields[1:] {
		v, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return Telemetry{}, ErrMalformedTelemetry
		}
		*counts[i] = uint32(v)
	}

	return t, nil
}
