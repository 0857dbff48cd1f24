//go:build !tinygo

package core

import (
	"sync"
	"time"
)

// HostTicker is a TickDriver for hosted platforms, built on time.AfterFunc.
// Every arm, retarget or cancel bumps a generation counter; a callback from
// an older generation is dropped, so a tick never fires on a stale period.
//
// onTick runs on its own goroutine, outside the ticker's lock, and receives
// the epoch of the arm it belongs to. The epoch changes on ScheduleTick and
// CancelTick but not on RetargetTick, so a receiver can call TickCurrent
// under its own lock to drop a tick that was overtaken by a stop or restart.
type HostTicker struct {
	mu     sync.Mutex
	onTick func(epoch uint64)
	timer  *time.Timer
	period time.Duration
	last   time.Time
	gen    uint64
	epoch  uint64
	armed  bool
}

// NewHostTicker returns a ticker that calls onTick on every period.
func NewHostTicker(onTick func(epoch uint64)) *HostTicker {
	return &HostTicker{onTick: onTick}
}

// ScheduleTick arms the ticker so the first tick lands one period from now.
func (h *HostTicker) ScheduleTick(periodMS uint32) bool {
	if periodMS == 0 {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopLocked()
	h.epoch++
	h.period = time.Duration(periodMS) * time.Millisecond
	h.last = time.Now()
	h.startLocked(h.period)
	return true
}

// RetargetTick changes the period of an armed ticker; the next tick lands
// one new period after the last tick, or immediately if that has passed.
func (h *HostTicker) RetargetTick(periodMS uint32) bool {
	if periodMS == 0 {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	period := time.Duration(periodMS) * time.Millisecond
	if !h.armed {
		h.epoch++
		h.period = period
		h.last = time.Now()
		h.startLocked(period)
		return true
	}

	h.stopLocked()
	h.period = period
	wait := time.Until(h.last.Add(period))
	if wait < 0 {
		wait = 0
	}
	h.startLocked(wait)
	return true
}

// CancelTick stops the ticker. A callback already running is not waited for;
// TickCurrent reports false for it from now on.
func (h *HostTicker) CancelTick() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopLocked()
	h.epoch++
}

// TickCurrent reports whether a tick delivered with epoch still belongs to
// the live arm.
func (h *HostTicker) TickCurrent(epoch uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.armed && epoch == h.epoch
}

// Armed reports whether a tick is pending.
func (h *HostTicker) Armed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.armed
}

func (h *HostTicker) stopLocked() {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.gen++
	h.armed = false
}

func (h *HostTicker) startLocked(wait time.Duration) {
	gen := h.gen
	h.armed = true
	h.timer = time.AfterFunc(wait, func() { h.fire(gen) })
}

func (h *HostTicker) fire(gen uint64) {
	h.mu.Lock()
	if gen != h.gen || !h.armed {
		h.mu.Unlock()
		return
	}
	h.last = time.Now()
	h.timer = time.AfterFunc(h.period, func() { h.fire(gen) })
	epoch := h.epoch
	h.mu.Unlock()

	h.onTick(epoch)
}
