//go:build rp2040

package main

import (
	"device/rp"
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"

	"marblesort/core"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerALARM1   = timerBase + 0x14
	timerTIMERAWH = timerBase + 0x24 // Raw timer high word
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word
	timerINTR     = timerBase + 0x34
	timerINTE     = timerBase + 0x38

	// ALARM0 belongs to the TinyGo runtime
	tickAlarmBit = 1 << 1
)

var (
	timerRAWH  = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL  = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
	timerAlarm = (*volatile.Register32)(unsafe.Pointer(uintptr(timerALARM1)))
	timerIntr  = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTR)))
	timerInte  = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTE)))

	nextTick uint32
)

// GetHardwareTime reads the low 32 bits of the 1 MHz timer
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// GetHardwareUptime reads the full 64-bit RP2040 hardware timer
func GetHardwareUptime() uint64 {
	// Read high, low, high to detect a carry between the two words
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// hwClock implements core.Clock
type hwClock struct{}

func (hwClock) Millis() uint32 {
	return uint32(GetHardwareUptime() / 1000)
}

// hwMicroCounter implements core.MicroCounter on top of the raw timer.
// Resetting only moves the base; the timer itself keeps running.
type hwMicroCounter struct {
	base uint32
}

func (c *hwMicroCounter) ResetMicros() {
	c.base = GetHardwareTime()
}

func (c *hwMicroCounter) Micros() uint32 {
	return GetHardwareTime() - c.base
}

// StartMotionTick arms ALARM1 every core.TickPeriodUS and routes it to
// the sequencer. Each alarm is scheduled from the previous deadline so
// late interrupts do not accumulate drift.
func StartMotionTick() {
	intr := interrupt.New(rp.IRQ_TIMER_IRQ_1, motionTickIRQ)
	intr.SetPriority(0x00)

	nextTick = GetHardwareTime() + core.TickPeriodUS
	timerInte.SetBits(tickAlarmBit)
	timerAlarm.Set(nextTick)
	intr.Enable()
}

func motionTickIRQ(interrupt.Interrupt) {
	timerIntr.Set(tickAlarmBit) // write-1-to-clear

	nextTick += core.TickPeriodUS
	timerAlarm.Set(nextTick)

	if sorter != nil {
		sorter.OnTick()
	}
}
