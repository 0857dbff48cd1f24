package core

import "sync/atomic"

// TimerFreq is the rate of the system time base. The RP2040 TIMERAWL
// counter runs at 1 MHz, so one tick is one microsecond.
const TimerFreq = 1000000

var (
	systemTicks uint32
	currentTime uint32 // snapshot taken by ProcessTimers before dispatch
)

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return atomic.LoadUint32(&systemTicks)
}

// SetTime sets the current system time. Targets call this from the main loop
// with the hardware counter; tests use it to step time.
func SetTime(ticks uint32) {
	atomic.StoreUint32(&systemTicks, ticks)
}

// TimerFromMS converts milliseconds to timer ticks
func TimerFromMS(ms uint32) uint32 {
	return ms * (TimerFreq / 1000)
}

// TimerToMS converts timer ticks to milliseconds
func TimerToMS(ticks uint32) uint32 {
	return ticks / (TimerFreq / 1000)
}

// timerBefore reports whether a is earlier than b, tolerating wraparound of
// the 32-bit counter (about 71 minutes at 1 MHz).
func timerBefore(a, b uint32) bool {
	return int32(a-b) < 0
}

// ProcessTimers runs every timer that is due at the current system time.
func ProcessTimers() {
	currentTime = GetTime()
	TimerDispatch()
}
