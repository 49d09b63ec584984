//go:build rp2040

package main

import (
	"machine"

	"marblesort/core"
)

var debugUART *machine.UART

// InitDebugUART routes core debug output to UART0 at 115200 baud.
// USB carries only telemetry, so diagnostics never share the command link.
func InitDebugUART() {
	debugUART = machine.UART0

	err := debugUART.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       pinDebugTX,
		RX:       pinDebugRX,
	})
	if err != nil {
		return
	}

	core.SetDebugWriter(func(s string) {
		debugUART.Write([]byte(s))
		debugUART.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(debugOutput)
	core.DebugPrintln("=== marblesort " + core.DefaultVerticalMode.String() + " ===")
}
