package core

// EventKind classifies a joystick notification.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventCalibrated
	EventFastMove
	EventAxisActive
	EventAxisIdle
	EventTickScheduleFailed
	EventUnknownChannel
	EventDropped
)

func (k EventKind) String() string {
	switch k {
	case EventCalibrated:
		return "calibrated"
	case EventFastMove:
		return "fast_move"
	case EventAxisActive:
		return "axis_active"
	case EventAxisIdle:
		return "axis_idle"
	case EventTickScheduleFailed:
		return "tick_sched_failed"
	case EventUnknownChannel:
		return "unknown_channel"
	case EventDropped:
		return "dropped"
	default:
		return "none"
	}
}

// EventLinePrefix starts every formatted event line on the debug output.
const EventLinePrefix = "EVT "

// Event is one notification queued from the sample or tick context.
// Which fields are meaningful depends on Kind:
//
//	fast_move          Axis, Value, Delta (Value minus previous sample)
//	axis_active/idle   Axis, Value, Delta (Value minus center)
//	tick_sched_failed  PeriodMS
//	unknown_channel    Channel, Value
//	calibrated         Centers
//	dropped            Count
type Event struct {
	Kind     EventKind
	Axis     Axis
	Channel  ADCChannelID
	Value    uint16
	Delta    int32
	PeriodMS uint32
	Centers  [AxisCount]uint16
	Count    uint32
	Clock    uint32
}

// DefaultEventLogSize is the ring capacity used when none is configured.
const DefaultEventLogSize = 16

// EventLog is a fixed-capacity ring of events. Push never blocks or
// allocates and may run in interrupt context; when the ring is full the
// event is dropped and counted. Drain runs from the main loop.
type EventLog struct {
	g       guard
	buf     []Event
	head    int // index of the oldest event
	count   int
	dropped uint32
	flushed uint32 // drops already reported by Drain
}

// NewEventLog allocates a ring holding size events.
func NewEventLog(size int) *EventLog {
	if size <= 0 {
		size = DefaultEventLogSize
	}
	return &EventLog{buf: make([]Event, size)}
}

// Push queues e, returning false if it was dropped.
func (l *EventLog) Push(e Event) bool {
	state := l.g.enter()
	defer l.g.exit(state)

	if l.count == len(l.buf) {
		l.dropped++
		return false
	}
	l.buf[(l.head+l.count)%len(l.buf)] = e
	l.count++
	return true
}

// Len returns the number of queued events.
func (l *EventLog) Len() int {
	state := l.g.enter()
	defer l.g.exit(state)
	return l.count
}

// Dropped returns the total number of events lost to a full ring.
func (l *EventLog) Dropped() uint32 {
	state := l.g.enter()
	defer l.g.exit(state)
	return l.dropped
}

// Drain hands every queued event to fn, oldest first, followed by a single
// EventDropped if events were lost since the previous Drain. fn runs outside
// the critical section so it may block on I/O. Returns the number of events
// passed to fn.
func (l *EventLog) Drain(fn func(Event)) int {
	n := 0
	for {
		state := l.g.enter()
		if l.count == 0 {
			lost := l.dropped - l.flushed
			l.flushed = l.dropped
			l.g.exit(state)
			if lost > 0 {
				fn(Event{Kind: EventDropped, Count: lost, Clock: GetTime()})
				n++
			}
			return n
		}
		e := l.buf[l.head]
		l.head = (l.head + 1) % len(l.buf)
		l.count--
		l.g.exit(state)

		fn(e)
		n++
	}
}

// AppendEvent appends the line form of e to dst, e.g.
//
//	EVT fast_move axis=Y value=2310 delta=262 clock=1200345
//
// No trailing newline is added.
func AppendEvent(dst []byte, e Event) []byte {
	dst = append(dst, EventLinePrefix...)
	dst = append(dst, e.Kind.String()...)

	switch e.Kind {
	case EventFastMove, EventAxisActive, EventAxisIdle:
		dst = append(dst, " axis="...)
		dst = append(dst, e.Axis.String()...)
		dst = appendField(dst, "value", int64(e.Value))
		dst = appendField(dst, "delta", int64(e.Delta))
	case EventTickScheduleFailed:
		dst = appendField(dst, "period_ms", int64(e.PeriodMS))
	case EventUnknownChannel:
		dst = appendField(dst, "channel", int64(e.Channel))
		dst = appendField(dst, "value", int64(e.Value))
	case EventCalibrated:
		dst = appendField(dst, "center_y", int64(e.Centers[AxisY]))
		dst = appendField(dst, "center_x", int64(e.Centers[AxisX]))
	case EventDropped:
		dst = appendField(dst, "count", int64(e.Count))
	}
	return appendField(dst, "clock", int64(e.Clock))
}

func appendField(dst []byte, key string, v int64) []byte {
	dst = append(dst, ' ')
	dst = append(dst, key...)
	dst = append(dst, '=')
	return appendInt(dst, v)
}
