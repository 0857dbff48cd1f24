package main

import (
	"context"
	"io"
	"testing"
	"time"

	"joyblink/config"
	"joyblink/core"
	"joyblink/host/monitor"
)

func TestPositionAt(t *testing.T) {
	script := []waypoint{
		{0, 2048, 2048},
		{100 * time.Millisecond, 4048, 2048},
		{100 * time.Millisecond, 4048, 0},
	}
	tests := []struct {
		at   time.Duration
		y, x uint16
	}{
		{-time.Millisecond, 2048, 2048},
		{0, 2048, 2048},
		{50 * time.Millisecond, 3048, 2048},
		{100 * time.Millisecond, 4048, 2048},
		{time.Second, 4048, 0},
	}
	for _, tt := range tests {
		y, x := positionAt(script, tt.at)
		if y != tt.y || x != tt.x {
			t.Errorf("at %v: expected %d/%d, got %d/%d", tt.at, tt.y, tt.x, y, x)
		}
	}
}

func TestSimADC(t *testing.T) {
	adc := newSimADC([core.AxisCount]core.ADCChannelID{0, 1}, []waypoint{{0, 1000, 3000}}, 0)
	if v, err := adc.ReadRaw(0); err != nil || v != 1000 {
		t.Errorf("Expected Y 1000, got %d (%v)", v, err)
	}
	if v, err := adc.ReadRaw(1); err != nil || v != 3000 {
		t.Errorf("Expected X 3000, got %d (%v)", v, err)
	}
	if _, err := adc.ReadRaw(2); err == nil {
		t.Error("Expected error for unwired channel")
	}
	if err := adc.ConfigureChannel(3); err == nil {
		t.Error("Expected error configuring unwired channel")
	}
}

func TestJitterStaysInRange(t *testing.T) {
	adc := newSimADC([core.AxisCount]core.ADCChannelID{0, 1}, nil, 8)
	for i := 0; i < 1000; i++ {
		v := adc.jitter(2048)
		if v < 2040 || v > 2056 {
			t.Fatalf("Expected jitter within 8 counts, got %d", v)
		}
	}
	if adc.jitter(4095) > 4095 || adc.jitter(0) > 8 {
		t.Error("Expected jitter clamped to the ADC range")
	}
}

func TestSimulateShortScript(t *testing.T) {
	if testing.Short() {
		t.Skip("runs in real time")
	}

	cfg := config.Default()
	cfg.Calibration.Samples = 5
	cfg.Calibration.DelayMS = 1

	script := []waypoint{
		{0, 2048, 2048},
		{50 * time.Millisecond, 2048, 2048},
		{60 * time.Millisecond, 4095, 2048},
		{400 * time.Millisecond, 4095, 2048},
		{410 * time.Millisecond, 2048, 2048},
	}

	counts := map[string]int{}
	sink := monitor.SinkFunc(func(e monitor.Event) error {
		counts[e.Kind]++
		return nil
	})
	logger := monitor.SetupLogger(io.Discard, monitor.LogLevelError)

	if err := simulate(context.Background(), cfg, script, 0, sink, logger); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if counts[monitor.KindCalibrated] != 1 {
		t.Errorf("Expected one calibrated event, got %v", counts)
	}
	if counts[monitor.KindAxisActive] < 1 || counts[monitor.KindAxisIdle] < 1 {
		t.Errorf("Expected Y to activate and release, got %v", counts)
	}
}
