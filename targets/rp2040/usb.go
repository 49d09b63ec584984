//go:build rp2040

package main

import (
	"machine"
)

// usbPort implements core.SerialPort over USB CDC. TinyGo buffers
// received bytes itself, so reception never needs re-arming and bytes
// reach the command channel through pumpUSB instead of an interrupt.
type usbPort struct{}

// InitUSB configures machine.Serial, which is USB CDC on the Pico
func InitUSB() error {
	return machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})
}

func (usbPort) Write(p []byte) (int, error) {
	return machine.Serial.Write(p)
}

func (usbPort) Rearm() {}

// pumpUSB hands every buffered byte to the sorter
func pumpUSB() {
	for machine.Serial.Buffered() > 0 {
		b, err := machine.Serial.ReadByte()
		if err != nil {
			return
		}
		sorter.OnByte(b)
	}
}
