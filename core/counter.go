package core

import (
	"io"

	"marblesort/protocol"
)

// Detector is the per-sensor debounce state
type Detector struct {
	Triggered   bool   // object currently in band and already counted
	LastTrigger uint32 // ms timestamp of the last counted detection
}

// Counts is the marble tally. Present never goes below zero.
type Counts struct {
	Entered uint32
	Exited  uint32
	Present uint32
}

// InBand reports whether a distance means "marble in front of the sensor"
func InBand(distanceCM float32) bool {
	return distanceCM > MinDistanceCM && distanceCM < EmptyDistanceCM-DetectThresholdCM
}

// MarbleCounter turns range samples into debounced entry/exit counts and
// reports each counted marble as a telemetry line. Owned by the scheduler
// loop; nothing else touches its state.
type MarbleCounter struct {
	ranger    Rangefinder
	telemetry io.Writer

	counts    Counts
	detectors [NumSensors]Detector
	scratch   [32]byte
}

// NewMarbleCounter creates a counter sampling ranger and writing telemetry
// lines to w
func NewMarbleCounter(ranger Rangefinder, w io.Writer) *MarbleCounter {
	return &MarbleCounter{ranger: ranger, telemetry: w}
}

// Counts returns the current tally
func (c *MarbleCounter) Counts() Counts {
	return c.counts
}

// Detector returns the debounce state of a sensor
func (c *MarbleCounter) Detector(id SensorID) Detector {
	return c.detectors[id-1]
}

// SamplePass measures both sensors, entry first. now is the loop's
// millisecond timestamp, shared by both sensors.
func (c *MarbleCounter) SamplePass(now uint32) {
	c.observe(SensorEntry, now)
	c.observe(SensorExit, now)
}

// observe runs the debounce for one sensor
func (c *MarbleCounter) observe(id SensorID, now uint32) {
	d := &c.detectors[id-1]

	distance, err := c.ranger.Measure(id)
	if err != nil || !InBand(distance) {
		// Object gone (or no echo): re-arm for the next one
		d.Triggered = false
		return
	}

	if d.Triggered || now-d.LastTrigger <= DetectCooldownMS {
		return
	}

	d.Triggered = true
	d.LastTrigger = now

	kind := protocol.EventIn
	if id == SensorEntry {
		c.counts.Entered++
		c.counts.Present++
	} else {
		kind = protocol.EventOut
		c.counts.Exited++
		if c.counts.Present > 0 {
			c.counts.Present--
		}
	}

	RecordEvent(EvtDetection, uint8(id), int32(c.counts.Present))
	c.report(kind)
}

// report transmits one telemetry line. Blocking; a failed transmit is
// dropped, the counts stay authoritative.
func (c *MarbleCounter) report(kind protocol.EventKind) {
	if c.telemetry == nil {
		return
	}
	line := protocol.AppendTelemetry(c.scratch[:0], protocol.Telemetry{
		Kind:    kind,
		Entered: c.counts.Entered,
		Exited:  c.counts.Exited,
		Present: c.counts.Present,
	})
	_, _ = c.telemetry.Write(line)
}
