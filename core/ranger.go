package core

// HC-SR04 style ultrasonic ranging by busy-waiting on the microsecond
// counter. Measure blocks the caller for up to two echo timeouts; the
// motion tick keeps running underneath it.

import "errors"

var (
	ErrEchoTimeout   = errors.New("ranger: echo timeout")
	ErrUnknownSensor = errors.New("ranger: unknown sensor")
)

// SensorID identifies an ultrasonic sensor
type SensorID uint8

const (
	SensorEntry SensorID = 1 // marbles entering the sorter
	SensorExit  SensorID = 2 // marbles leaving it

	NumSensors = 2
)

// RangerPins wires one sensor
type RangerPins struct {
	Trigger GPIOPin
	Echo    GPIOPin
}

// RangeSample is one measurement. Err is ErrEchoTimeout when nothing
// answered; callers treat that as "no object".
type RangeSample struct {
	Sensor     SensorID
	DistanceCM float32
	Err        error
}

// Valid returns true if the sample carries a distance
func (s RangeSample) Valid() bool {
	return s.Err == nil && s.DistanceCM > 0
}

// Rangefinder measures distance to the nearest object in front of a sensor
type Rangefinder interface {
	Measure(id SensorID) (float32, error)
}

// Ranger implements Rangefinder over GPIO and the microsecond counter
type Ranger struct {
	gpio    GPIODriver
	counter MicroCounter
	pins    [NumSensors]RangerPins
}

// NewRanger configures the trigger outputs and echo inputs.
// pins[0] is the entry sensor, pins[1] the exit sensor.
func NewRanger(gpio GPIODriver, counter MicroCounter, pins [NumSensors]RangerPins) (*Ranger, error) {
	for _, p := range pins {
		if err := gpio.ConfigureOutput(p.Trigger); err != nil {
			return nil, err
		}
		if err := gpio.ConfigureInputPullDown(p.Echo); err != nil {
			return nil, err
		}
		if err := gpio.SetPin(p.Trigger, false); err != nil {
			return nil, err
		}
	}
	return &Ranger{gpio: gpio, counter: counter, pins: pins}, nil
}

// Sample measures a sensor and wraps the result
func (r *Ranger) Sample(id SensorID) RangeSample {
	d, err := r.Measure(id)
	return RangeSample{Sensor: id, DistanceCM: d, Err: err}
}

// Measure fires one ping and times the echo pulse.
// Blocks for 2 ms of settle time plus the echo round trip.
func (r *Ranger) Measure(id SensorID) (float32, error) {
	if id < SensorEntry || id > SensorExit {
		return 0, ErrUnknownSensor
	}
	p := r.pins[id-1]

	// Trigger low, let the sensor settle
	_ = r.gpio.SetPin(p.Trigger, false)
	r.spin(TriggerSettleUS)

	// 10 us trigger pulse
	r.counter.ResetMicros()
	_ = r.gpio.SetPin(p.Trigger, true)
	for r.counter.Micros() < TriggerPulseUS {
	}
	_ = r.gpio.SetPin(p.Trigger, false)

	// Wait for the echo rising edge
	r.counter.ResetMicros()
	for !r.gpio.ReadPin(p.Echo) {
		if r.counter.Micros() > EchoTimeoutUS {
			return 0, ErrEchoTimeout
		}
	}

	// Time the echo pulse
	r.counter.ResetMicros()
	for r.gpio.ReadPin(p.Echo) {
		if r.counter.Micros() > EchoTimeoutUS {
			return 0, ErrEchoTimeout
		}
	}
	elapsedUS := r.counter.Micros()

	// Round trip, halve it
	return float32(elapsedUS) * SoundCMPerUS / 2, nil
}

// spin busy-waits us microseconds
func (r *Ranger) spin(us uint32) {
	r.counter.ResetMicros()
	for r.counter.Micros() < us {
	}
}
