package main

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"joyblink/core"
)

var errNoChannel = errors.New("sim: channel not wired")

// waypoint places the stick at Y, X at time At into the script.
type waypoint struct {
	At   time.Duration
	Y, X uint16
}

// defaultScript rests for calibration, sweeps Y up and down slowly, flicks
// X to the edge and back, and ends at rest.
func defaultScript(rest uint16) []waypoint {
	return []waypoint{
		{0, rest, rest},
		{1500 * time.Millisecond, rest, rest},
		{4 * time.Second, 4095, rest},
		{5 * time.Second, 4095, rest},
		{8 * time.Second, rest, rest},
		{8500 * time.Millisecond, rest, rest},
		{8520 * time.Millisecond, rest, 4095},
		{9 * time.Second, rest, 4095},
		{9020 * time.Millisecond, rest, rest},
		{10 * time.Second, 0, rest},
		{11 * time.Second, rest, rest},
	}
}

// positionAt interpolates the script linearly. Past the last waypoint the
// stick stays where it ended.
func positionAt(script []waypoint, t time.Duration) (y, x uint16) {
	if len(script) == 0 {
		return 0, 0
	}
	if t <= script[0].At {
		return script[0].Y, script[0].X
	}
	for i := 1; i < len(script); i++ {
		a, b := script[i-1], script[i]
		if t > b.At {
			continue
		}
		span := b.At - a.At
		if span <= 0 {
			return b.Y, b.X
		}
		return lerp(a.Y, b.Y, t-a.At, span), lerp(a.X, b.X, t-a.At, span)
	}
	last := script[len(script)-1]
	return last.Y, last.X
}

func lerp(from, to uint16, elapsed, span time.Duration) uint16 {
	d := int64(to) - int64(from)
	return uint16(int64(from) + d*int64(elapsed)/int64(span))
}

// simADC is a core.ADCDriver whose channels follow a script in real time.
type simADC struct {
	channels [core.AxisCount]core.ADCChannelID
	script   []waypoint
	start    time.Time
	noise    uint16
	seq      atomic.Uint32
}

func newSimADC(channels [core.AxisCount]core.ADCChannelID, script []waypoint, noise uint16) *simADC {
	return &simADC{channels: channels, script: script, start: time.Now(), noise: noise}
}

func (s *simADC) ConfigureChannel(ch core.ADCChannelID) error {
	for _, c := range s.channels {
		if c == ch {
			return nil
		}
	}
	return errNoChannel
}

func (s *simADC) ReadRaw(ch core.ADCChannelID) (core.ADCValue, error) {
	y, x := positionAt(s.script, time.Since(s.start))
	var v uint16
	switch ch {
	case s.channels[core.AxisY]:
		v = y
	case s.channels[core.AxisX]:
		v = x
	default:
		return 0, errNoChannel
	}
	return core.ADCValue(s.jitter(v)), nil
}

// jitter adds a small deterministic wobble, like a real pot at rest.
func (s *simADC) jitter(v uint16) uint16 {
	if s.noise == 0 {
		return v
	}
	n := s.seq.Add(1)
	off := int32(n*2654435761>>16) % int32(2*s.noise+1)
	w := int32(v) + off - int32(s.noise)
	if w < 0 {
		return 0
	}
	if w > 4095 {
		return 4095
	}
	return uint16(w)
}

// countingIndicator counts blink edges for the session summary.
type countingIndicator struct {
	mu      sync.Mutex
	on      bool
	changes int
}

func (c *countingIndicator) Set(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on != c.on {
		c.changes++
	}
	c.on = on
}

func (c *countingIndicator) Changes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changes
}
