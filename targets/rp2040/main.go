//go:build rp2040

package main

import (
	"machine"

	"marblesort/core"
)

// sorter is read by the interrupt handlers once main has assembled it
var sorter *core.Machine

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitDebugUART()
	core.MustInit("usb", InitUSB())

	core.SetGPIODriver(NewRPGPIODriver())
	core.SetPWMDriver(NewServoPWMDriver())
	core.SetClock(hwClock{})
	core.SetMicroCounter(&hwMicroCounter{})
	core.SetSerialPort(usbPort{})

	m, err := core.NewMachine(core.Hardware{}, boardPins, core.DefaultVerticalMode)
	core.MustInit("machine", err)
	m.SetPump(pumpUSB)
	sorter = m

	StartMotionTick()

	// Stop button: every falling edge is honored
	pinEStop.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	core.MustInit("estop", pinEStop.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		sorter.OnEmergencyStop()
	}))

	core.DebugPrintln("[MAIN] running")
	m.Run()
}
