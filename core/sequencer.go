package core

import "sync/atomic"

// Sequencer is the motion tick handler. Each tick moves every busy axis
// one half-step toward zero remaining steps.
type Sequencer struct {
	motion *Motion
	driver PhaseDriver

	ticks atomic.Uint32 // ticks with at least one axis stepped
	steps atomic.Uint32 // half-steps emitted, all axes
}

// NewSequencer creates a sequencer driving motion through driver
func NewSequencer(motion *Motion, driver PhaseDriver) *Sequencer {
	return &Sequencer{motion: motion, driver: driver}
}

// Tick runs one motion period. Runs in the timer interrupt: no blocking,
// no allocation, no debug output.
func (s *Sequencer) Tick() {
	var stepped uint32
	for _, a := range s.motion.Axes {
		if a.step(s.driver) {
			stepped++
		}
	}
	if stepped > 0 {
		s.ticks.Add(1)
		s.steps.Add(stepped)
	}
}

// TotalSteps returns the number of half-steps emitted since start
func (s *Sequencer) TotalSteps() uint32 {
	return s.steps.Load()
}

// BusyTicks returns the number of ticks that moved at least one axis
func (s *Sequencer) BusyTicks() uint32 {
	return s.ticks.Load()
}
