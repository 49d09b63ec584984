//go:build rp2040

package main

import (
	"machine"

	"marblesort/core"
)

// Raspberry Pi Pico wiring. Coil order for each 28BYJ-48 driver board is
// IN1..IN4. HC-SR04 echo lines go through a 5V to 3V3 divider.
const (
	pinEStop = machine.GPIO15 // normally-open button to ground

	pinDebugTX = machine.GPIO0
	pinDebugRX = machine.GPIO1
)

var boardPins = core.Pins{
	Axes: [core.NumAxes][4]core.GPIOPin{
		core.AxisHorizontal: {2, 3, 4, 5},
		core.AxisLeft:       {6, 7, 8, 9},
		core.AxisRight:      {10, 11, 12, 13},
	},
	Servo: 16, // PWM0 channel A
	Sensors: [core.NumSensors]core.RangerPins{
		{Trigger: 18, Echo: 19}, // entry
		{Trigger: 20, Echo: 21}, // exit
	},
}
