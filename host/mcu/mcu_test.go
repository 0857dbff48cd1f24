package mcu

import (
	"context"
	"io"
	"strings"
	"testing"

	"joyblink/host/monitor"
)

const boardOutput = `--- joyblink ---
Axis Y: ADC0 (GPIO26), drives blink
Axis X: ADC1 (GPIO27)
Indicator: gpio on GPIO12
Calibrating joystick, hold it at rest...
EVT calibrated center_y=2051 center_x=1987 clock=2500000
Ready. Move the joystick.
EVT axis_active axis=Y value=2400 delta=349 clock=2600000
EVT fast_move axis=Y value=2400 delta=349 clock=2600000
EVT axis_active axis=X value=3000 delta=1013 clock=2620000
EVT axis_idle axis=Y value=2050 delta=-1 clock=2900000
`

func TestRunTracksStatus(t *testing.T) {
	port := io.NopCloser(strings.NewReader(boardOutput))
	m := NewMCU(port, monitor.SetupLogger(io.Discard, monitor.LogLevelError))

	var kinds []string
	sink := monitor.SinkFunc(func(e monitor.Event) error {
		kinds = append(kinds, e.Kind)
		return nil
	})
	if err := m.Run(context.Background(), sink); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(kinds) != 5 {
		t.Errorf("Expected 5 events, got %v", kinds)
	}

	s := m.Status()
	if !s.Calibrated || s.CenterY != 2051 || s.CenterX != 1987 {
		t.Errorf("Expected calibrated 2051/1987, got %+v", s)
	}
	if s.Active["Y"] || !s.Active["X"] {
		t.Errorf("Expected only X active, got %v", s.Active)
	}
	if s.Counts[monitor.KindAxisActive] != 2 || s.Counts[monitor.KindFastMove] != 1 {
		t.Errorf("Unexpected counts %v", s.Counts)
	}
	if s.Fatal != "" {
		t.Errorf("Expected no fatal, got %q", s.Fatal)
	}
}

func TestRunRecordsFatal(t *testing.T) {
	out := "Calibrating joystick, hold it at rest...\r\nFATAL: calibrate axis X: sample 10: adc conversion error\r\n"
	m := NewMCU(io.NopCloser(strings.NewReader(out)), monitor.SetupLogger(io.Discard, monitor.LogLevelError))
	m.Run(context.Background(), monitor.Fanout{})

	s := m.Status()
	if s.Fatal != "calibrate axis X: sample 10: adc conversion error" {
		t.Errorf("Unexpected fatal %q", s.Fatal)
	}
	if s.Calibrated {
		t.Error("Expected board not calibrated")
	}
}

func TestStatusIsACopy(t *testing.T) {
	m := NewMCU(io.NopCloser(strings.NewReader("EVT fast_move axis=Y value=1 delta=-300 clock=1\n")),
		monitor.SetupLogger(io.Discard, monitor.LogLevelError))
	m.Run(context.Background(), monitor.Fanout{})

	s := m.Status()
	s.Counts[monitor.KindFastMove] = 99
	if m.Status().Counts[monitor.KindFastMove] != 1 {
		t.Error("Expected Status to return an independent copy")
	}
}
