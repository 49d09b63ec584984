package core

import "sync/atomic"

// Servo drives the gate servo through a hardware PWM channel
type Servo struct {
	pwm   PWMDriver
	pin   PWMPin
	angle atomic.Uint32
}

// NewServo configures pin for a 20 ms servo period
func NewServo(pwm PWMDriver, pin PWMPin) (*Servo, error) {
	if _, err := pwm.ConfigureHardwarePWM(pin, ServoPeriodUS); err != nil {
		return nil, err
	}
	return &Servo{pwm: pwm, pin: pin}, nil
}

// PulseWidth maps an angle to the servo pulse in microseconds.
// Angles above ServoMaxAngle are clamped; the division truncates.
func PulseWidth(angle uint16) uint32 {
	if angle > ServoMaxAngle {
		angle = ServoMaxAngle
	}
	return ServoMinPulseUS + uint32(angle)*(ServoMaxPulseUS-ServoMinPulseUS)/ServoMaxAngle
}

// SetAngle moves the gate. Safe to call from interrupt context.
func (s *Servo) SetAngle(angle uint16) {
	if angle > ServoMaxAngle {
		angle = ServoMaxAngle
	}
	s.angle.Store(uint32(angle))
	_ = s.pwm.SetDutyCycle(s.pin, PWMValue(PulseWidth(angle)))
}

// Angle returns the last commanded angle
func (s *Servo) Angle() uint16 {
	return uint16(s.angle.Load())
}
