package core

// Stepper axis state shared between the motion tick, the command
// dispatcher and the emergency stop.
//
// Ownership per field:
//   - remaining: assigned by dispatch and e-stop, consumed by the tick
//   - phase: written by the tick only
//
// Both are 32-bit atomics so every store is a single indivisible write.

import (
	"sync/atomic"
)

// AxisID identifies one stepper-driven degree of freedom
type AxisID uint8

const (
	AxisHorizontal AxisID = iota // carriage
	AxisLeft                     // left lift (M1)
	AxisRight                    // right lift (M2)

	NumAxes
)

func (id AxisID) String() string {
	switch id {
	case AxisHorizontal:
		return "horizontal"
	case AxisLeft:
		return "left"
	case AxisRight:
		return "right"
	default:
		return "axis" + itoa(int(id))
	}
}

// VerticalMode selects how the two lifts are commanded. It is fixed at
// build time (see mode_*.go).
type VerticalMode uint8

const (
	// VerticalIndependent drives both lifts with the same rotation sense;
	// V assigns both targets, L and R are not accepted.
	VerticalIndependent VerticalMode = iota

	// VerticalSynchronized slaves both lifts to the V master target. The
	// right lift is mounted as a mirror image of the left one, so its coils
	// rotate the opposite way for the same logical move. L and R assign a
	// single lift.
	VerticalSynchronized
)

func (m VerticalMode) String() string {
	if m == VerticalSynchronized {
		return "synchronized"
	}
	return "independent"
}

// Axis represents a single half-stepped unipolar motor
type Axis struct {
	ID     AxisID
	Pins   [4]GPIOPin // coil A..D outputs
	Mirror bool       // physical rotation is the negation of the logical direction

	remaining atomic.Int32
	phase     atomic.Uint32
}

// SetTarget replaces the pending move with steps half-steps.
// The sign is the direction; 0 stops the axis at the next tick.
func (a *Axis) SetTarget(steps int32) {
	a.remaining.Store(steps)
}

// Stop cancels the pending move
func (a *Axis) Stop() {
	a.remaining.Store(0)
}

// Remaining returns the half-steps still to be taken (signed)
func (a *Axis) Remaining() int32 {
	return a.remaining.Load()
}

// Phase returns the current index into the half-step sequence
func (a *Axis) Phase() uint8 {
	return uint8(a.phase.Load())
}

// IsActive returns true if the axis has steps pending
func (a *Axis) IsActive() bool {
	return a.remaining.Load() != 0
}

// step advances the axis by one half-step if it has work.
// Called from the motion tick only.
func (a *Axis) step(driver PhaseDriver) bool {
	remaining := a.remaining.Load()
	if remaining == 0 {
		return false
	}

	dir := int32(1)
	if remaining < 0 {
		dir = -1
	}
	physical := dir
	if a.Mirror {
		physical = -dir
	}

	next := (int32(a.phase.Load()) + PhaseCount + physical) % PhaseCount
	a.phase.Store(uint32(next))
	driver.Write(a.Pins, uint8(next))

	// A failed swap means dispatch or the e-stop assigned a new target
	// since the load; theirs wins.
	a.remaining.CompareAndSwap(remaining, remaining-dir)
	return true
}

// Motion holds every axis of the machine
type Motion struct {
	Mode VerticalMode
	Axes [NumAxes]*Axis
}

// NewMotion creates the three axes with their coil pins. In synchronized
// mode the right lift is the mirror axis.
func NewMotion(mode VerticalMode, pins [NumAxes][4]GPIOPin) *Motion {
	m := &Motion{Mode: mode}
	for id := AxisID(0); id < NumAxes; id++ {
		m.Axes[id] = &Axis{ID: id, Pins: pins[id]}
	}
	m.Axes[AxisRight].Mirror = mode == VerticalSynchronized
	return m
}

// Axis returns an axis by id, nil if out of range
func (m *Motion) Axis(id AxisID) *Axis {
	if id >= NumAxes {
		return nil
	}
	return m.Axes[id]
}

// MoveHorizontal assigns the carriage target (+ right, - left)
func (m *Motion) MoveHorizontal(steps int32) {
	m.Axes[AxisHorizontal].SetTarget(steps)
}

// MoveVertical assigns the master target to both lifts (+ up, - down)
func (m *Motion) MoveVertical(steps int32) {
	m.Axes[AxisLeft].SetTarget(steps)
	m.Axes[AxisRight].SetTarget(steps)
}

// MoveLeft assigns the left lift alone
func (m *Motion) MoveLeft(steps int32) {
	m.Axes[AxisLeft].SetTarget(steps)
}

// MoveRight assigns the right lift alone
func (m *Motion) MoveRight(steps int32) {
	m.Axes[AxisRight].SetTarget(steps)
}

// StopAll zeroes every axis. Takes effect at the next tick.
func (m *Motion) StopAll() {
	for _, a := range m.Axes {
		a.Stop()
	}
}

// IsActive returns true if any axis has steps pending
func (m *Motion) IsActive() bool {
	for _, a := range m.Axes {
		if a.IsActive() {
			return true
		}
	}
	return false
}
