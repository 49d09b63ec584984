package core

// Build-time tuning for the sorter. Nothing here changes at run time.
const (
	// Motion tick period. The step sequencer advances every axis by at most
	// one half-step per tick.
	TickPeriodUS = 1000

	// Command frame buffer, terminator included
	FrameCapacity = 32

	// Gate servo: 1 MHz PWM timer, 20 ms period
	ServoPeriodUS    = 20000
	ServoMinPulseUS  = 500
	ServoMaxPulseUS  = 2500
	ServoMaxAngle    = 270
	ServoClosedAngle = 65 // rest/transport position, also the e-stop position
	ServoOpenAngle   = 25 // dump position

	// HC-SR04 timing
	TriggerSettleUS = 2000
	TriggerPulseUS  = 10
	EchoTimeoutUS   = 30000

	// Detection band is (MinDistanceCM, EmptyDistanceCM-DetectThresholdCM)
	EmptyDistanceCM   = 20
	DetectThresholdCM = 5
	MinDistanceCM     = 2

	DetectCooldownMS = 500
	SampleIntervalMS = 100
)

// SoundCMPerUS is the speed of sound in centimetres per microsecond
const SoundCMPerUS = 0.0343
