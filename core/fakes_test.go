package core

import (
	"errors"
	"testing"
)

// fakeIndicator records every Set call.
type fakeIndicator struct {
	on   bool
	sets []bool
}

func (f *fakeIndicator) Set(on bool) {
	f.on = on
	f.sets = append(f.sets, on)
}

// fakeTicker records driver calls and never fires on its own.
type fakeTicker struct {
	scheduled []uint32
	cancels   int
	fail      bool
	live      bool
}

func (f *fakeTicker) ScheduleTick(periodMS uint32) bool {
	if f.fail {
		return false
	}
	if f.live {
		panic("ScheduleTick while a tick is live")
	}
	f.scheduled = append(f.scheduled, periodMS)
	f.live = true
	return true
}

func (f *fakeTicker) CancelTick() {
	f.cancels++
	f.live = false
}

// fakeRetargeter adds in-place retargeting to fakeTicker.
type fakeRetargeter struct {
	fakeTicker
	retargets []uint32
}

func (f *fakeRetargeter) RetargetTick(periodMS uint32) bool {
	if f.fail {
		f.live = false
		return false
	}
	f.retargets = append(f.retargets, periodMS)
	return true
}

// fakeADC returns queued values per channel, repeating the last one.
type fakeADC struct {
	values map[ADCChannelID][]ADCValue
	reads  map[ADCChannelID]int
	failAt map[ADCChannelID]int // read index that fails, if present
}

var errADCRead = errors.New("adc read failed")

func newFakeADC() *fakeADC {
	return &fakeADC{
		values: make(map[ADCChannelID][]ADCValue),
		reads:  make(map[ADCChannelID]int),
		failAt: make(map[ADCChannelID]int),
	}
}

func (f *fakeADC) ConfigureChannel(ch ADCChannelID) error { return nil }

func (f *fakeADC) ReadRaw(ch ADCChannelID) (ADCValue, error) {
	i := f.reads[ch]
	f.reads[ch]++
	if at, ok := f.failAt[ch]; ok && at == i {
		return 0, errADCRead
	}
	vals := f.values[ch]
	if len(vals) == 0 {
		return 0, nil
	}
	if i >= len(vals) {
		return vals[len(vals)-1], nil
	}
	return vals[i], nil
}

// newTestJoystick returns a joystick calibrated with both axes centered at
// 2048 and the default tunables.
func newTestJoystick(t testing.TB) (*Joystick, *fakeIndicator, *fakeTicker) {
	t.Helper()
	ind := &fakeIndicator{}
	tick := &fakeTicker{}
	js, err := NewJoystick(DefaultTunables(), ind, NewEventLog(32))
	if err != nil {
		t.Fatalf("NewJoystick failed: %v", err)
	}
	js.SetTickDriver(tick)

	adc := newFakeADC()
	adc.values[0] = []ADCValue{2048}
	adc.values[1] = []ADCValue{2048}
	if err := js.Calibrate(adc, nil); err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}
	js.Events().Drain(func(Event) {})
	ind.sets = nil
	return js, ind, tick
}

// drainEvents empties the joystick's event log.
func drainEvents(js *Joystick) []Event {
	var out []Event
	js.Events().Drain(func(e Event) { out = append(out, e) })
	return out
}
