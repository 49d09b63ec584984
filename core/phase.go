package core

// PhaseCount is the length of the half-step sequence
const PhaseCount = 8

// Half-step coil sequence, coil A in the high bit:
// 1000 1100 0100 0110 0010 0011 0001 1001
var halfStepSequence = [PhaseCount]uint8{
	0b1000, 0b1100, 0b0100, 0b0110,
	0b0010, 0b0011, 0b0001, 0b1001,
}

// PhasePattern returns the 4-bit coil pattern for a phase index
func PhasePattern(phase uint8) uint8 {
	return halfStepSequence[phase%PhaseCount]
}

// PhaseDriver energizes an axis' four coil lines for a phase index.
// It holds no state; the same driver serves every axis.
type PhaseDriver struct {
	gpio GPIODriver
}

// NewPhaseDriver creates a phase driver on top of a GPIO driver
func NewPhaseDriver(gpio GPIODriver) PhaseDriver {
	return PhaseDriver{gpio: gpio}
}

// Write drives pins[0..3] with the coil pattern of phase
func (d PhaseDriver) Write(pins [4]GPIOPin, phase uint8) {
	pattern := PhasePattern(phase)
	for i, pin := range pins {
		// Output writes cannot fail once the pins are configured
		_ = d.gpio.SetPin(pin, pattern&(0b1000>>i) != 0)
	}
}

// Release de-energizes all four coils
func (d PhaseDriver) Release(pins [4]GPIOPin) {
	for _, pin := range pins {
		_ = d.gpio.SetPin(pin, false)
	}
}
