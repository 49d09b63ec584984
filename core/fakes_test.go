package core

import (
	"bytes"
	"errors"
)

var errPinBusy = errors.New("pin busy")

// fakeGPIO records pin levels and configuration
type fakeGPIO struct {
	levels  map[GPIOPin]bool
	outputs map[GPIOPin]bool
	inputs  map[GPIOPin]bool
	failPin GPIOPin // ConfigureOutput fails for this pin when nonzero
	writes  int
}

func newFakeGPIO() *fakeGPIO {
	return &fakeGPIO{
		levels:  make(map[GPIOPin]bool),
		outputs: make(map[GPIOPin]bool),
		inputs:  make(map[GPIOPin]bool),
	}
}

func (g *fakeGPIO) ConfigureOutput(pin GPIOPin) error {
	if g.failPin != 0 && pin == g.failPin {
		return errPinBusy
	}
	g.outputs[pin] = true
	return nil
}

func (g *fakeGPIO) ConfigureInputPullUp(pin GPIOPin) error {
	g.inputs[pin] = true
	return nil
}

func (g *fakeGPIO) ConfigureInputPullDown(pin GPIOPin) error {
	g.inputs[pin] = true
	return nil
}

func (g *fakeGPIO) SetPin(pin GPIOPin, value bool) error {
	g.levels[pin] = value
	g.writes++
	return nil
}

func (g *fakeGPIO) ReadPin(pin GPIOPin) bool {
	return g.levels[pin]
}

// pattern reads back the 4-bit coil pattern on pins
func (g *fakeGPIO) pattern(pins [4]GPIOPin) uint8 {
	var p uint8
	for i, pin := range pins {
		if g.levels[pin] {
			p |= 0b1000 >> i
		}
	}
	return p
}

// fakePWM records the last duty value per pin
type fakePWM struct {
	periods map[PWMPin]uint32
	duty    map[PWMPin]PWMValue
	fail    bool
}

func newFakePWM() *fakePWM {
	return &fakePWM{
		periods: make(map[PWMPin]uint32),
		duty:    make(map[PWMPin]PWMValue),
	}
}

func (p *fakePWM) ConfigureHardwarePWM(pin PWMPin, periodUS uint32) (uint32, error) {
	if p.fail {
		return 0, errPinBusy
	}
	p.periods[pin] = periodUS
	return periodUS, nil
}

func (p *fakePWM) SetDutyCycle(pin PWMPin, value PWMValue) error {
	p.duty[pin] = value
	return nil
}

// fakeClock is a hand-advanced millisecond clock
type fakeClock struct {
	ms uint32
}

func (c *fakeClock) Millis() uint32 { return c.ms }

// fakeSerial captures transmitted bytes and counts re-arms
type fakeSerial struct {
	tx     bytes.Buffer
	rearms int
}

func (s *fakeSerial) Write(p []byte) (int, error) {
	return s.tx.Write(p)
}

func (s *fakeSerial) Rearm() {
	s.rearms++
}

// simSonar simulates an HC-SR04 wired to a GPIO driver and the
// microsecond counter. Simulated time advances by one microsecond per
// counter read, which is what every busy-wait loop does.
type simSonar struct {
	*fakeGPIO

	now  uint32
	base uint32

	echoFor  map[GPIOPin]GPIOPin // trigger -> echo
	trigHigh map[GPIOPin]bool
	trigRise uint32
	trigFall uint32
	fired    GPIOPin // echo pin armed by the last trigger pulse

	delayUS   uint32 // trigger fall to echo rise
	pulseUS   uint32 // echo high time; 0 means the echo never rises
	stuckHigh bool   // echo never falls
}

func newSimSonar(pins ...RangerPins) *simSonar {
	s := &simSonar{
		fakeGPIO: newFakeGPIO(),
		echoFor:  make(map[GPIOPin]GPIOPin),
		trigHigh: make(map[GPIOPin]bool),
		delayUS:  50,
	}
	for _, p := range pins {
		s.echoFor[p.Trigger] = p.Echo
	}
	return s
}

func (s *simSonar) ResetMicros() { s.base = s.now }

func (s *simSonar) Micros() uint32 {
	v := s.now - s.base
	s.now++
	return v
}

func (s *simSonar) SetPin(pin GPIOPin, value bool) error {
	if echo, ok := s.echoFor[pin]; ok {
		switch {
		case value && !s.trigHigh[pin]:
			s.trigRise = s.now
		case !value && s.trigHigh[pin]:
			s.trigFall = s.now
			s.fired = echo
		}
		s.trigHigh[pin] = value
	}
	return s.fakeGPIO.SetPin(pin, value)
}

func (s *simSonar) ReadPin(pin GPIOPin) bool {
	if pin != s.fired || s.pulseUS == 0 {
		return false
	}
	rise := s.trigFall + s.delayUS
	if s.now < rise {
		return false
	}
	return s.stuckHigh || s.now < rise+s.pulseUS
}

// scriptedRanger replays distances per sensor. A negative distance is an
// echo timeout.
type scriptedRanger struct {
	next  map[SensorID]float32
	calls int
}

func newScriptedRanger() *scriptedRanger {
	return &scriptedRanger{next: map[SensorID]float32{SensorEntry: -1, SensorExit: -1}}
}

func (r *scriptedRanger) set(id SensorID, distance float32) {
	r.next[id] = distance
}

func (r *scriptedRanger) Measure(id SensorID) (float32, error) {
	r.calls++
	d := r.next[id]
	if d < 0 {
		return 0, ErrEchoTimeout
	}
	return d, nil
}

var testPins = Pins{
	Axes: [NumAxes][4]GPIOPin{
		{10, 11, 12, 13},
		{20, 21, 22, 23},
		{30, 31, 32, 33},
	},
	Servo: 40,
	Sensors: [NumSensors]RangerPins{
		{Trigger: 50, Echo: 51},
		{Trigger: 52, Echo: 53},
	},
}
