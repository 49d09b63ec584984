package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a control event for post-mortem analysis
type Event struct {
	EventType uint8 // Event type code
	Code      uint8 // Command code, sensor id or axis id
	Value     int32 // Context-dependent value
	Seq       uint32
}

// Event type codes
const (
	EvtCommand   = 1 // frame dispatched
	EvtUnknown   = 2 // frame with unknown code ignored
	EvtOverflow  = 3 // frame discarded, buffer full without newline
	EvtDetection = 4 // marble counted
	EvtEStop     = 5 // emergency stop honored
	EvtHalt      = 6 // fail-stop
	EvtBusy      = 7 // frame dropped, previous one not consumed yet
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Event ring buffer (non-blocking, for post-mortem)
	eventRing     [EventRingSize]Event
	eventRingHead uint8
	eventSeq      uint32
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer.
// Never call it from the motion tick.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent captures an event in the ring buffer.
// Cheap and non-blocking; callers in interrupt context race with the
// loop only on the slot being overwritten, which is acceptable for a
// diagnostic log.
func RecordEvent(eventType, code uint8, value int32) {
	idx := eventRingHead
	eventSeq++
	eventRing[idx] = Event{
		EventType: eventType,
		Code:      code,
		Value:     value,
		Seq:       eventSeq,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// RecentEvents returns the recorded events, oldest first
func RecentEvents() []Event {
	events := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// eventName returns the dump label for an event type
func eventName(eventType uint8) string {
	switch eventType {
	case EvtCommand:
		return "COMMAND"
	case EvtUnknown:
		return "UNKNOWN"
	case EvtOverflow:
		return "OVERFLOW"
	case EvtDetection:
		return "DETECT"
	case EvtEStop:
		return "ESTOP!"
	case EvtHalt:
		return "HALT!"
	case EvtBusy:
		return "BUSY"
	default:
		return "?"
	}
}

// DumpEventRing outputs the event ring buffer (call on shutdown/error).
// It bypasses the debug enable flag.
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENT] === Event Ring Dump ===")
	for _, evt := range RecentEvents() {
		debugPrintln("[EVENT] #" + utoa(evt.Seq) + " " + eventName(evt.EventType) +
			" code=" + itoa(int(evt.Code)) +
			" value=" + itoa(int(evt.Value)))
	}
	debugPrintln("[EVENT] === End Dump ===")
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
	eventSeq = 0
}
