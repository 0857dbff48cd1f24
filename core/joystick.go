package core

// Joystick holds all state shared between the sample context (ADC
// conversion complete) and the tick context (blink timer). The only entry
// points after construction are Calibrate, OnSampleReady and OnTick (or
// OnTickEpoch).
type Joystick struct {
	g         guard
	tun       Tunables
	indicator Indicator
	events    *EventLog
	timer     *ArmedTimer

	calibrated bool
	center     [AxisCount]uint16
	last       [AxisCount]uint16
	active     [AxisCount]bool
	periodMS   uint32
	blink      BlinkState
}

// Snapshot is a consistent copy of the joystick state.
type Snapshot struct {
	Calibrated bool
	Center     [AxisCount]uint16
	Last       [AxisCount]uint16
	Active     [AxisCount]bool
	PeriodMS   uint32
	Blink      BlinkState
	TickArmed  bool
}

// NewJoystick validates t and returns an uncalibrated joystick. A tick
// driver must be attached with SetTickDriver before Calibrate.
func NewJoystick(t Tunables, indicator Indicator, events *EventLog) (*Joystick, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if events == nil {
		events = NewEventLog(DefaultEventLogSize)
	}
	return &Joystick{
		tun:       t,
		indicator: indicator,
		events:    events,
		periodMS:  t.MaxBlinkPeriodMS,
	}, nil
}

// SetTickDriver attaches the blink timer. Drivers usually need OnTick at
// construction, hence the separate step.
func (j *Joystick) SetTickDriver(d TickDriver) {
	state := j.g.enter()
	defer j.g.exit(state)
	j.timer = NewArmedTimer(d)
}

// Events returns the log the joystick reports into.
func (j *Joystick) Events() *EventLog { return j.events }

// Tunables returns the tunables the joystick was built with.
func (j *Joystick) Tunables() Tunables { return j.tun }

// Snapshot returns a copy of the current state.
func (j *Joystick) Snapshot() Snapshot {
	state := j.g.enter()
	defer j.g.exit(state)

	s := Snapshot{
		Calibrated: j.calibrated,
		Center:     j.center,
		Last:       j.last,
		Active:     j.active,
		PeriodMS:   j.periodMS,
		Blink:      j.blink,
	}
	if j.timer != nil {
		s.TickArmed = j.timer.Armed()
	}
	return s
}

// OnSampleReady handles one completed conversion. It runs in interrupt
// context: fixed arithmetic, no allocation, at most one timer rearm.
// Samples arriving before calibration, and samples from channels that are
// not mapped to an axis, change nothing.
func (j *Joystick) OnSampleReady(raw uint16, ch ADCChannelID) {
	state := j.g.enter()
	defer j.g.exit(state)

	if !j.calibrated {
		return
	}
	axis, ok := j.tun.axisFor(ch)
	if !ok {
		j.events.Push(Event{Kind: EventUnknownChannel, Channel: ch, Value: raw, Clock: GetTime()})
		return
	}

	prev := j.last[axis]
	if IsFastMove(raw, prev, j.tun.FastMoveThreshold) {
		j.events.Push(Event{
			Kind:  EventFastMove,
			Axis:  axis,
			Value: raw,
			Delta: int32(raw) - int32(prev),
			Clock: GetTime(),
		})
	}
	j.last[axis] = raw

	delta, activated := Deflect(raw, j.center[axis], j.tun.Deadzone[axis])
	if activated != j.active[axis] {
		j.active[axis] = activated
		kind := EventAxisIdle
		if activated {
			kind = EventAxisActive
		}
		j.events.Push(Event{Kind: kind, Axis: axis, Value: raw, Delta: delta, Clock: GetTime()})
	}

	if axis != BlinkAxis {
		return
	}
	if activated {
		j.periodMS = BlinkPeriod(delta, j.tun.Deadzone[axis], j.tun)
		if j.blink == BlinkInactive {
			j.startBlink()
		} else {
			j.rearmBlink()
		}
	} else if j.blink != BlinkInactive {
		j.stopBlink()
	}
}
