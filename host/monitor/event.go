// Package monitor parses the event lines a joyblink board writes and
// forwards them to log, MQTT and WebSocket sinks.
package monitor

import (
	"strconv"
	"strings"
	"time"

	"joyblink/core"
)

// Event kinds as they appear on the wire.
var (
	KindCalibrated         = core.EventCalibrated.String()
	KindFastMove           = core.EventFastMove.String()
	KindAxisActive         = core.EventAxisActive.String()
	KindAxisIdle           = core.EventAxisIdle.String()
	KindTickScheduleFailed = core.EventTickScheduleFailed.String()
	KindUnknownChannel     = core.EventUnknownChannel.String()
	KindDropped            = core.EventDropped.String()
)

// Event is one parsed event line.
type Event struct {
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields"`
	Time   time.Time         `json:"time"`
}

// ParseLine parses a line of the form
//
//	EVT <kind> key=value ...
//
// and reports false for anything else (banner, debug output).
func ParseLine(line string) (Event, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), core.EventLinePrefix)
	if !ok {
		return Event{}, false
	}

	parts := strings.Fields(rest)
	if len(parts) == 0 {
		return Event{}, false
	}

	e := Event{
		Kind:   parts[0],
		Fields: make(map[string]string, len(parts)-1),
		Time:   time.Now(),
	}
	for _, p := range parts[1:] {
		k, v, found := strings.Cut(p, "=")
		if !found || k == "" {
			continue
		}
		e.Fields[k] = v
	}
	return e, true
}

// FromCore converts an event produced in-process.
func FromCore(ce core.Event) Event {
	e, _ := ParseLine(string(core.AppendEvent(nil, ce)))
	return e
}

// Int returns a numeric field.
func (e Event) Int(key string) (int64, bool) {
	v, ok := e.Fields[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Axis returns the axis field, or "" if the event has none.
func (e Event) Axis() string {
	return e.Fields["axis"]
}
