//go:build rp2040

package main

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/servo"

	"marblesort/core"
)

var (
	errInvalidPin    = errors.New("rp2040: invalid pin")
	errServoPeriod   = errors.New("rp2040: servo channels run at 20ms only")
	errNotConfigured = errors.New("rp2040: pwm pin not configured")
)

// ServoPWMDriver implements core.PWMDriver with the TinyGo servo driver.
// Duty values are pulse widths in microseconds.
type ServoPWMDriver struct {
	servos map[core.PWMPin]servo.Servo
}

// NewServoPWMDriver creates a new servo PWM driver
func NewServoPWMDriver() *ServoPWMDriver {
	return &ServoPWMDriver{
		servos: make(map[core.PWMPin]servo.Servo),
	}
}

// ConfigureHardwarePWM attaches a servo to the slice owning pin
func (d *ServoPWMDriver) ConfigureHardwarePWM(pin core.PWMPin, periodUS uint32) (uint32, error) {
	if pin > 29 {
		return 0, errInvalidPin
	}
	if periodUS != core.ServoPeriodUS {
		return 0, errServoPeriod
	}

	// GPIO N belongs to slice (N >> 1) & 7
	s, err := servo.New(pwmSlice(uint8((pin>>1)&0x7)), machine.Pin(pin))
	if err != nil {
		return 0, err
	}
	d.servos[pin] = s
	return periodUS, nil
}

// SetDutyCycle sets the high time of the next pulses
func (d *ServoPWMDriver) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	s, exists := d.servos[pin]
	if !exists {
		return errNotConfigured
	}
	s.SetMicroseconds(int16(value))
	return nil
}

// pwmSlice returns the PWM peripheral for a slice number
func pwmSlice(slice uint8) servo.PWM {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}
