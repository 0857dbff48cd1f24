package core

// Timer represents a scheduled event
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer

	queued bool
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// MaxTimers bounds the number of simultaneously queued timers. Arming past
// this limit fails instead of growing the list from interrupt context.
const MaxTimers = 8

var (
	timerList  *Timer
	timerCount int
)

// ScheduleTimer adds a timer to the schedule. A timer that is already queued
// is moved to its new WakeTime rather than queued twice. Returns false when
// the schedule is full.
func ScheduleTimer(t *Timer) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if t.queued {
		unlinkTimer(t)
	}
	if timerCount >= MaxTimers {
		return false
	}
	insertTimer(t)
	return true
}

// DeleteTimer removes a timer from the schedule if it is queued.
func DeleteTimer(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if t.queued {
		unlinkTimer(t)
	}
}

// insertTimer inserts a timer in sorted order by WakeTime
func insertTimer(t *Timer) {
	t.queued = true
	timerCount++

	if timerList == nil || timerBefore(t.WakeTime, timerList.WakeTime) {
		t.Next = timerList
		timerList = t
		return
	}

	current := timerList
	for current.Next != nil && !timerBefore(t.WakeTime, current.Next.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

func unlinkTimer(t *Timer) {
	if timerList == t {
		timerList = t.Next
	} else {
		for current := timerList; current != nil; current = current.Next {
			if current.Next == t {
				current.Next = t.Next
				break
			}
		}
	}
	t.Next = nil
	t.queued = false
	timerCount--
}

// TimerDispatch processes due timers
func TimerDispatch() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for timerList != nil && !timerBefore(currentTime, timerList.WakeTime) {
		timer := timerList
		unlinkTimer(timer)

		if timer.Handler(timer) == SF_RESCHEDULE {
			insertTimer(timer)
		}
	}
}

// resetTimers drops every queued timer.
func resetTimers() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for timerList != nil {
		unlinkTimer(timerList)
	}
}

// SchedulerTicker is a TickDriver backed by the timer list. Ticks run from
// ProcessTimers in the main loop.
type SchedulerTicker struct {
	timer  Timer
	onTick func()
	period uint32 // ticks
	last   uint32 // time of the last tick, or of arming
	armed  bool
}

// NewSchedulerTicker returns a ticker that calls onTick on every period.
func NewSchedulerTicker(onTick func()) *SchedulerTicker {
	s := &SchedulerTicker{onTick: onTick}
	s.timer.Handler = s.fire
	return s
}

// ScheduleTick arms the ticker so the first tick lands one period from now.
func (s *SchedulerTicker) ScheduleTick(periodMS uint32) bool {
	if periodMS == 0 {
		return false
	}
	now := GetTime()
	s.period = TimerFromMS(periodMS)
	s.last = now
	s.timer.WakeTime = now + s.period
	s.armed = ScheduleTimer(&s.timer)
	return s.armed
}

// RetargetTick changes the period of an armed ticker, measuring the new
// period from the last tick so frequent retargets cannot starve it.
func (s *SchedulerTicker) RetargetTick(periodMS uint32) bool {
	if !s.armed {
		return s.ScheduleTick(periodMS)
	}
	if periodMS == 0 {
		return false
	}
	s.period = TimerFromMS(periodMS)
	wake := s.last + s.period
	if now := GetTime(); timerBefore(wake, now) {
		wake = now
	}
	s.timer.WakeTime = wake
	s.armed = ScheduleTimer(&s.timer)
	return s.armed
}

// CancelTick removes the pending tick.
func (s *SchedulerTicker) CancelTick() {
	DeleteTimer(&s.timer)
	s.armed = false
}

func (s *SchedulerTicker) fire(t *Timer) uint8 {
	s.last = t.WakeTime
	t.WakeTime += s.period
	if !timerBefore(currentTime, t.WakeTime) {
		// Main loop stalled for more than a period; skip the missed ticks.
		t.WakeTime = currentTime + s.period
	}
	s.onTick()
	return SF_RESCHEDULE
}
