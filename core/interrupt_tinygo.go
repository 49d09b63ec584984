//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts disables interrupts and returns the previous state
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}

// halt masks every interrupt and parks the CPU. There is no way out short
// of a reset.
func halt(reason string) {
	interrupt.Disable()
	for {
	}
}
