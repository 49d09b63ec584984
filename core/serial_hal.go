package core

// SerialPort is the command link. Write is a blocking transmit. Received
// bytes are delivered one per interrupt to Machine.OnByte; reception stays
// disabled until Rearm is called.
type SerialPort interface {
	Write(p []byte) (int, error)
	Rearm()
}

var serialPort SerialPort

// SetSerialPort is called by target-specific code to register its link.
func SetSerialPort(p SerialPort) {
	serialPort = p
}

// MustSerial returns the configured link or panics if missing.
func MustSerial() SerialPort {
	if serialPort == nil {
		panic("serial port not configured")
	}
	return serialPort
}
