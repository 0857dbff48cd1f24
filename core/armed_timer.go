package core

// TickDriver is the periodic timer primitive a platform provides. Neither
// method may call the tick callback synchronously.
type TickDriver interface {
	// ScheduleTick starts a periodic tick, first firing one period from now.
	// Returns false if the timer could not be armed.
	ScheduleTick(periodMS uint32) bool

	// CancelTick stops the tick. Safe to call when nothing is armed.
	CancelTick()
}

// TickRetargeter is implemented by drivers that can change the period of a
// live tick in place, keeping its phase anchored on the last tick.
type TickRetargeter interface {
	RetargetTick(periodMS uint32) bool
}

// TickEpochChecker is implemented by drivers that deliver ticks on their own
// goroutine, where a tick can still be in flight after CancelTick or a new
// ScheduleTick. The epoch is the value the driver passed with the tick.
type TickEpochChecker interface {
	TickCurrent(epoch uint64) bool
}

// ArmedTimer owns the single periodic tick. Callers never cancel and
// schedule separately; Rearm does both, so at most one tick is ever live.
// Not safe for concurrent use: the owner calls it from inside its critical
// section.
type ArmedTimer struct {
	driver   TickDriver
	armed    bool
	periodMS uint32
}

// NewArmedTimer wraps d.
func NewArmedTimer(d TickDriver) *ArmedTimer {
	return &ArmedTimer{driver: d}
}

// Rearm cancels any live tick and arms a new one at periodMS, with the first
// tick one period from now. A live tick on a TickRetargeter is instead
// retargeted in place, anchored on its last tick rather than on now, so
// frequent rearms cannot postpone it forever. Returns false if the driver
// failed to arm; nothing is live afterwards in that case.
func (a *ArmedTimer) Rearm(periodMS uint32) bool {
	if a.armed {
		if r, ok := a.driver.(TickRetargeter); ok {
			a.armed = r.RetargetTick(periodMS)
			if a.armed {
				a.periodMS = periodMS
			}
			return a.armed
		}
		a.driver.CancelTick()
		a.armed = false
	}

	a.armed = a.driver.ScheduleTick(periodMS)
	if a.armed {
		a.periodMS = periodMS
	}
	return a.armed
}

// Disarm cancels the live tick, if any.
func (a *ArmedTimer) Disarm() {
	if !a.armed {
		return
	}
	a.driver.CancelTick()
	a.armed = false
}

// TickCurrent reports whether a tick delivered with epoch belongs to the live
// arm. Drivers that are not TickEpochCheckers only tick while armed.
func (a *ArmedTimer) TickCurrent(epoch uint64) bool {
	if c, ok := a.driver.(TickEpochChecker); ok {
		return a.armed && c.TickCurrent(epoch)
	}
	return true
}

// Armed reports whether a tick is live.
func (a *ArmedTimer) Armed() bool { return a.armed }

// PeriodMS returns the period of the last successful arm.
func (a *ArmedTimer) PeriodMS() uint32 { return a.periodMS }
