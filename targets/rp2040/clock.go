//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"

	"joyblink/core"
)

// RP2040 timer peripheral, 1 MHz free-running counter.
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// GetHardwareTime returns the low 32 bits of the microsecond counter.
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// UpdateSystemTime copies the hardware counter into the core time base.
// Called from the main loop before ProcessTimers.
func UpdateSystemTime() {
	core.SetTime(GetHardwareTime())
}
