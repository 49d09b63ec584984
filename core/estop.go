package core

import "sync/atomic"

// EmergencyStop is the edge-triggered stop button handler. Every edge is
// honored; there is no debounce on purpose.
type EmergencyStop struct {
	motion  *Motion
	servo   *Servo
	channel *CommandChannel

	count atomic.Uint32
}

// NewEmergencyStop creates the stop handler
func NewEmergencyStop(motion *Motion, servo *Servo, channel *CommandChannel) *EmergencyStop {
	return &EmergencyStop{motion: motion, servo: servo, channel: channel}
}

// Trigger stops all motion and closes the gate. A line waiting in the
// command mailbox is dropped first so it cannot restart an axis after
// the stop.
func (e *EmergencyStop) Trigger() {
	if e.channel != nil {
		e.channel.Discard()
	}
	e.motion.StopAll()
	e.servo.SetAngle(ServoClosedAngle)

	e.count.Add(1)
	RecordEvent(EvtEStop, 0, int32(ServoClosedAngle))
}

// Count returns how many stop edges have been honored
func (e *EmergencyStop) Count() uint32 {
	return e.count.Load()
}
