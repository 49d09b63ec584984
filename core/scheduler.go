package core

// Timer represents a scheduled loop task. WakeTime is in milliseconds.
type Timer struct {
	WakeTime uint32
	Handler  func(t *Timer, now uint32) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// TimerQueue is a wake-time ordered list of loop tasks. Handlers run from
// the scheduler loop, never from interrupt context.
type TimerQueue struct {
	head *Timer
}

// ScheduleTimer adds a timer to the schedule
func (q *TimerQueue) ScheduleTimer(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	q.insertTimer(t)
}

// insertTimer inserts a timer in sorted order by WakeTime
func (q *TimerQueue) insertTimer(t *Timer) {
	if q.head == nil || int32(t.WakeTime-q.head.WakeTime) < 0 {
		t.Next = q.head
		q.head = t
		return
	}

	current := q.head
	for current.Next != nil && int32(current.Next.WakeTime-t.WakeTime) <= 0 {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// Dispatch runs every timer due at now
func (q *TimerQueue) Dispatch(now uint32) {
	for q.head != nil && elapsed(now, q.head.WakeTime) {
		timer := q.head
		q.head = timer.Next
		timer.Next = nil // Clear Next pointer to avoid circular references

		// Handlers must move WakeTime past now before rescheduling
		if timer.Handler(timer, now) == SF_RESCHEDULE {
			q.insertTimer(timer)
		}
	}
}

// Pending returns the number of scheduled timers
func (q *TimerQueue) Pending() int {
	n := 0
	for t := q.head; t != nil; t = t.Next {
		n++
	}
	return n
}
