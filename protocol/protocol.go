// Package protocol implements the marble sorter's line-based serial protocol
package protocol

// Version represents the marblesort firmware version
const Version = "0.1.0"

// Command codes. The firmware matches them case-insensitively.
const (
	CodeHorizontal byte = 'H' // horizontal carriage, signed steps
	CodeVertical   byte = 'V' // both lifts (master target)
	CodeLeft       byte = 'L' // left lift only
	CodeRight      byte = 'R' // right lift only
	CodeServo      byte = 'S' // gate servo angle in degrees
)

// Line framing
const (
	LineEnd        = '\n'
	CarriageReturn = '\r'

	// TelemetryPrefix marks the lines a host should parse. Anything else
	// on the link is debug output.
	TelemetryPrefix = '#'

	// MaxCommandLine is the longest command line (excluding the newline)
	// the firmware accepts before discarding the frame.
	MaxCommandLine = 31
)
