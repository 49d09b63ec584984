//go:build !tinygo

package core

// State is a placeholder for interrupt state on regular Go
type State uintptr

// disableInterrupts is a no-op on regular Go (for testing)
func disableInterrupts() State {
	return 0
}

// restoreInterrupts is a no-op on regular Go (for testing)
func restoreInterrupts(state State) {
	// No-op
}

// halt stops the program. Regular Go has no interrupts to mask, so the
// fail-stop is a panic that tests can observe.
func halt(reason string) {
	panic("core: halted: " + reason)
}
