package core

// Machine assembles the sorter's control core and exposes the three
// interrupt entry points plus the cooperative scheduler loop.

// Hardware bundles the collaborators. Nil fields fall back to the drivers
// registered with the Set* functions.
type Hardware struct {
	GPIO    GPIODriver
	PWM     PWMDriver
	Clock   Clock
	Counter MicroCounter
	Serial  SerialPort
}

// Pins is the pin-to-function map supplied by the target
type Pins struct {
	Axes    [NumAxes][4]GPIOPin
	Servo   PWMPin
	Sensors [NumSensors]RangerPins // entry, exit
}

// Machine is the assembled control core
type Machine struct {
	Motion    *Motion
	Sequencer *Sequencer
	Servo     *Servo
	Ranger    *Ranger
	Counter   *MarbleCounter
	Registry  *CommandRegistry
	Channel   *CommandChannel
	EStop     *EmergencyStop

	clock  Clock
	timers TimerQueue
	sample Timer
	pump   func()
}

// NewMachine configures every pin and wires the components. Any error
// here is an initialization failure; targets pass it to MustInit.
func NewMachine(hw Hardware, pins Pins, mode VerticalMode) (*Machine, error) {
	if hw.GPIO == nil {
		hw.GPIO = MustGPIO()
	}
	if hw.PWM == nil {
		hw.PWM = MustPWM()
	}
	if hw.Clock == nil {
		hw.Clock = MustClock()
	}
	if hw.Counter == nil {
		hw.Counter = MustMicroCounter()
	}
	if hw.Serial == nil {
		hw.Serial = MustSerial()
	}

	driver := NewPhaseDriver(hw.GPIO)
	for _, axisPins := range pins.Axes {
		for _, pin := range axisPins {
			if err := hw.GPIO.ConfigureOutput(pin); err != nil {
				return nil, err
			}
		}
		driver.Release(axisPins)
	}

	servo, err := NewServo(hw.PWM, pins.Servo)
	if err != nil {
		return nil, err
	}

	ranger, err := NewRanger(hw.GPIO, hw.Counter, pins.Sensors)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		Motion:   NewMotion(mode, pins.Axes),
		Servo:    servo,
		Ranger:   ranger,
		Registry: NewCommandRegistry(),
		clock:    hw.Clock,
	}
	m.Sequencer = NewSequencer(m.Motion, driver)
	m.Counter = NewMarbleCounter(ranger, hw.Serial)
	m.Channel = NewCommandChannel(hw.Serial, m.Registry)
	m.EStop = NewEmergencyStop(m.Motion, servo, m.Channel)

	RegisterMotionCommands(m.Registry, m.Motion, servo)

	// Safe start position
	servo.SetAngle(ServoClosedAngle)

	m.sample.WakeTime = hw.Clock.Millis() + SampleIntervalMS
	m.sample.Handler = m.sampleEvent
	m.timers.ScheduleTimer(&m.sample)

	return m, nil
}

// sampleEvent runs the marble counter and re-arms itself one interval
// after now. A late pass is not made up.
func (m *Machine) sampleEvent(t *Timer, now uint32) uint8 {
	m.Counter.SamplePass(now)
	t.WakeTime = now + SampleIntervalMS
	return SF_RESCHEDULE
}

// OnTick is the motion timer interrupt handler
func (m *Machine) OnTick() {
	m.Sequencer.Tick()
}

// OnByte is the serial receive interrupt handler
func (m *Machine) OnByte(b byte) {
	m.Channel.HandleByte(b)
}

// OnEmergencyStop is the stop button edge interrupt handler
func (m *Machine) OnEmergencyStop() {
	m.EStop.Trigger()
}

// SetPump installs a function run at the top of every loop iteration.
// Targets whose serial driver buffers internally use it to feed OnByte.
func (m *Machine) SetPump(pump func()) {
	m.pump = pump
}

// RunOnce executes one scheduler loop iteration
func (m *Machine) RunOnce() {
	if m.pump != nil {
		m.pump()
	}
	m.Channel.Process()
	m.timers.Dispatch(m.clock.Millis())
}

// Run is the scheduler loop. It never returns and never sleeps.
func (m *Machine) Run() {
	for {
		m.RunOnce()
	}
}
