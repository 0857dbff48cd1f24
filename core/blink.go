package core

// BlinkState is the phase of the indicator blink.
type BlinkState uint8

const (
	BlinkInactive BlinkState = iota
	BlinkOn
	BlinkOff
)

func (s BlinkState) String() string {
	switch s {
	case BlinkOn:
		return "on"
	case BlinkOff:
		return "off"
	default:
		return "inactive"
	}
}

// OnTick is the blink timer callback. While blinking it flips the indicator;
// otherwise it forces the indicator off, which covers a tick that was
// already in flight when the blink stopped.
func (j *Joystick) OnTick() {
	state := j.g.enter()
	defer j.g.exit(state)
	j.tickLocked()
}

// OnTickEpoch is OnTick for drivers that tag ticks with an epoch, such as
// HostTicker. A tick from an arm that has since been cancelled or replaced
// is dropped, so it cannot toggle a blink that started after it.
func (j *Joystick) OnTickEpoch(epoch uint64) {
	state := j.g.enter()
	defer j.g.exit(state)

	if j.timer != nil && !j.timer.TickCurrent(epoch) {
		return
	}
	j.tickLocked()
}

// Caller holds the guard.
func (j *Joystick) tickLocked() {
	switch j.blink {
	case BlinkOn:
		j.blink = BlinkOff
		j.indicator.Set(false)
	case BlinkOff:
		j.blink = BlinkOn
		j.indicator.Set(true)
	default:
		j.indicator.Set(false)
	}
}

// startBlink lights the indicator immediately and arms the tick.
// Caller holds the guard.
func (j *Joystick) startBlink() {
	j.blink = BlinkOn
	j.indicator.Set(true)
	j.rearmBlink()
}

// rearmBlink moves the tick to the current period without touching the
// phase. On failure the indicator keeps its state and the next sample tries
// again. Caller holds the guard.
func (j *Joystick) rearmBlink() {
	if !j.timer.Rearm(j.periodMS) {
		j.events.Push(Event{Kind: EventTickScheduleFailed, PeriodMS: j.periodMS, Clock: GetTime()})
	}
}

// stopBlink cancels the tick and turns the indicator off.
// Caller holds the guard.
func (j *Joystick) stopBlink() {
	j.timer.Disarm()
	j.blink = BlinkInactive
	j.indicator.Set(false)
}
