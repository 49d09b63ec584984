package core

// Clock is the monotonic millisecond time base. It wraps around after
// ~49 days; all comparisons in core are wrap-safe.
type Clock interface {
	Millis() uint32
}

// MicroCounter is a free-running 1 MHz counter that can be zeroed.
// Busy-wait timing in the ranger goes exclusively through it.
type MicroCounter interface {
	// ResetMicros sets the counter to zero
	ResetMicros()

	// Micros returns microseconds elapsed since the last reset
	Micros() uint32
}

var (
	clockSource  Clock
	microCounter MicroCounter
)

// SetClock is called by target-specific code to register its time base.
func SetClock(c Clock) {
	clockSource = c
}

// MustClock returns the configured clock or panics if missing.
func MustClock() Clock {
	if clockSource == nil {
		panic("clock not configured")
	}
	return clockSource
}

// SetMicroCounter is called by target-specific code to register its counter.
func SetMicroCounter(c MicroCounter) {
	microCounter = c
}

// MustMicroCounter returns the configured counter or panics if missing.
func MustMicroCounter() MicroCounter {
	if microCounter == nil {
		panic("microsecond counter not configured")
	}
	return microCounter
}

// elapsed reports whether now has reached or passed deadline
func elapsed(now, deadline uint32) bool {
	return int32(now-deadline) >= 0
}
