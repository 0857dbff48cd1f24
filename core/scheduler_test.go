package core

import "testing"

func TestScheduleTimerOrder(t *testing.T) {
	resetTimers()
	defer resetTimers()

	var fired []uint32
	handler := func(tm *Timer) uint8 {
		fired = append(fired, tm.WakeTime)
		return SF_DONE
	}

	timers := []*Timer{
		{WakeTime: 300, Handler: handler},
		{WakeTime: 100, Handler: handler},
		{WakeTime: 200, Handler: handler},
	}
	for _, tm := range timers {
		if !ScheduleTimer(tm) {
			t.Fatalf("ScheduleTimer(%d) failed", tm.WakeTime)
		}
	}

	SetTime(250)
	ProcessTimers()
	if len(fired) != 2 || fired[0] != 100 || fired[1] != 200 {
		t.Errorf("Expected [100 200], got %v", fired)
	}

	SetTime(300)
	ProcessTimers()
	if len(fired) != 3 || fired[2] != 300 {
		t.Errorf("Expected 300 to fire last, got %v", fired)
	}
	if timerCount != 0 {
		t.Errorf("Expected empty schedule, got %d timers", timerCount)
	}
}

func TestScheduleTimerMovesQueuedTimer(t *testing.T) {
	resetTimers()
	defer resetTimers()

	n := 0
	tm := &Timer{WakeTime: 100, Handler: func(*Timer) uint8 { n++; return SF_DONE }}
	ScheduleTimer(tm)
	tm.WakeTime = 500
	ScheduleTimer(tm)

	if timerCount != 1 {
		t.Fatalf("Expected one queued timer, got %d", timerCount)
	}
	SetTime(100)
	ProcessTimers()
	if n != 0 {
		t.Error("Expected moved timer not to fire at its old time")
	}
	SetTime(500)
	ProcessTimers()
	if n != 1 {
		t.Errorf("Expected one fire, got %d", n)
	}
}

func TestDeleteTimer(t *testing.T) {
	resetTimers()
	defer resetTimers()

	n := 0
	handler := func(*Timer) uint8 { n++; return SF_DONE }
	a := &Timer{WakeTime: 10, Handler: handler}
	b := &Timer{WakeTime: 20, Handler: handler}
	c := &Timer{WakeTime: 30, Handler: handler}
	ScheduleTimer(a)
	ScheduleTimer(b)
	ScheduleTimer(c)

	DeleteTimer(b)
	DeleteTimer(b) // not queued any more
	DeleteTimer(a)

	SetTime(100)
	ProcessTimers()
	if n != 1 {
		t.Errorf("Expected only the remaining timer to fire, got %d", n)
	}
}

func TestScheduleTimerCapacity(t *testing.T) {
	resetTimers()
	defer resetTimers()

	handler := func(*Timer) uint8 { return SF_DONE }
	timers := make([]Timer, MaxTimers+1)
	for i := 0; i < MaxTimers; i++ {
		timers[i] = Timer{WakeTime: uint32(i), Handler: handler}
		if !ScheduleTimer(&timers[i]) {
			t.Fatalf("ScheduleTimer %d failed below capacity", i)
		}
	}

	timers[MaxTimers] = Timer{WakeTime: 1000, Handler: handler}
	if ScheduleTimer(&timers[MaxTimers]) {
		t.Error("Expected ScheduleTimer to fail when full")
	}

	// Moving an already queued timer still works when full.
	timers[0].WakeTime = 2000
	if !ScheduleTimer(&timers[0]) {
		t.Error("Expected rescheduling a queued timer to succeed when full")
	}
}

func TestSchedulerTickerPeriodAndRetarget(t *testing.T) {
	resetTimers()
	defer resetTimers()

	n := 0
	SetTime(0)
	s := NewSchedulerTicker(func() { n++ })

	if !s.ScheduleTick(100) {
		t.Fatal("ScheduleTick failed")
	}

	step := func(now uint32, want int) {
		t.Helper()
		SetTime(now)
		ProcessTimers()
		if n != want {
			t.Fatalf("at %d: expected %d ticks, got %d", now, want, n)
		}
	}

	step(TimerFromMS(100)-1, 0)
	step(TimerFromMS(100), 1)

	// Retarget from the last tick: 100ms + 80ms.
	SetTime(TimerFromMS(150))
	if !s.RetargetTick(80) {
		t.Fatal("RetargetTick failed")
	}
	step(TimerFromMS(180)-1, 1)
	step(TimerFromMS(180), 2)

	// A retarget whose deadline already passed fires on the next dispatch.
	SetTime(TimerFromMS(300))
	s.RetargetTick(50)
	step(TimerFromMS(300), 3)
	step(TimerFromMS(350), 4)

	// A stalled loop does not replay missed ticks.
	step(TimerFromMS(1000), 5)
	step(TimerFromMS(1049), 5)
	step(TimerFromMS(1050), 6)

	s.CancelTick()
	step(TimerFromMS(5000), 6)
	if timerCount != 0 {
		t.Errorf("Expected empty schedule after cancel, got %d", timerCount)
	}
}

func TestSchedulerTickerWraparound(t *testing.T) {
	resetTimers()
	defer resetTimers()

	n := 0
	SetTime(0xFFFFFF00)
	s := NewSchedulerTicker(func() { n++ })
	s.ScheduleTick(1)

	SetTime(0xFFFFFFFF)
	ProcessTimers()
	if n != 0 {
		t.Fatal("Expected no tick before the wrapped deadline")
	}

	SetTime(0xFFFFFF00 + TimerFromMS(1))
	ProcessTimers()
	if n != 1 {
		t.Errorf("Expected tick after wrap, got %d", n)
	}
}

func TestSchedulerTickerRejectsZeroPeriod(t *testing.T) {
	resetTimers()
	defer resetTimers()

	s := NewSchedulerTicker(func() {})
	if s.ScheduleTick(0) {
		t.Error("Expected zero period to fail")
	}
}

func TestJoystickWithSchedulerTicker(t *testing.T) {
	resetTimers()
	defer resetTimers()
	SetTime(0)

	ind := &fakeIndicator{}
	js, err := NewJoystick(DefaultTunables(), ind, nil)
	if err != nil {
		t.Fatalf("NewJoystick failed: %v", err)
	}
	js.SetTickDriver(NewSchedulerTicker(js.OnTick))

	adc := newFakeADC()
	adc.values[0] = []ADCValue{2048}
	adc.values[1] = []ADCValue{2048}
	if err := js.Calibrate(adc, nil); err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}

	js.OnSampleReady(4095, 0) // full deflection: 50ms period
	if !ind.on {
		t.Fatal("Expected indicator on")
	}

	// Samples every 10ms keep retargeting; the blink must still advance.
	for ms := uint32(10); ms <= 200; ms += 10 {
		SetTime(TimerFromMS(ms))
		js.OnSampleReady(4095, 0)
		ProcessTimers()
	}
	// Ticks at 50, 100, 150, 200: on -> off -> on -> off -> on.
	if len(ind.sets) != 5 {
		t.Fatalf("Expected 5 indicator writes, got %v", ind.sets)
	}
	if !ind.on {
		t.Error("Expected indicator on after an even number of ticks")
	}

	js.OnSampleReady(2048, 0)
	if ind.on {
		t.Error("Expected indicator off after release")
	}
	SetTime(TimerFromMS(1000))
	ProcessTimers()
	if len(ind.sets) != 6 {
		t.Errorf("Expected no ticks after release, got %v", ind.sets)
	}
}
