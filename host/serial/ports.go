package serial

import (
	"errors"
	"sort"
	"strings"

	bugst "go.bug.st/serial"
)

// ErrNoDevice is returned when no device path was given or found
var ErrNoDevice = errors.New("no serial device")

// listPorts is swapped out by tests
var listPorts = bugst.GetPortsList

// ListPorts returns the serial devices present on this machine, sorted
func ListPorts() ([]string, error) {
	ports, err := listPorts()
	if err != nil {
		return nil, err
	}
	sort.Strings(ports)
	return ports, nil
}

// Detect picks the first port that looks like a USB CDC or USB UART
// adapter, which is how the sorter board enumerates.
func Detect() (string, error) {
	ports, err := ListPorts()
	if err != nil {
		return "", err
	}
	for _, p := range ports {
		if isUSBSerial(p) {
			return p, nil
		}
	}
	return "", ErrNoDevice
}

func isUSBSerial(name string) bool {
	for _, marker := range []string{"ttyACM", "ttyUSB", "usbmodem", "usbserial", "COM"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
