package config

import (
	"errors"
	"testing"
	"time"

	"joyblink/core"
)

func TestDefaultMatchesCoreDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if got, want := cfg.Tunables(), core.DefaultTunables(); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	if cfg.Indicator.Pin != 12 {
		t.Errorf("Expected indicator on GPIO12, got %d", cfg.Indicator.Pin)
	}
	if cfg.ChannelDwell() != 20*time.Millisecond {
		t.Errorf("Expected 20ms dwell, got %v", cfg.ChannelDwell())
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load([]byte(`{"axes": {"y": {"deadzone": 200}}, "blink": {"min_period_ms": 80}}`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tun := cfg.Tunables()
	if tun.Deadzone[core.AxisY] != 200 {
		t.Errorf("Expected Y deadzone 200, got %d", tun.Deadzone[core.AxisY])
	}
	if tun.Deadzone[core.AxisX] != 150 {
		t.Errorf("Expected default X deadzone 150, got %d", tun.Deadzone[core.AxisX])
	}
	if tun.MinBlinkPeriodMS != 80 || tun.MaxBlinkPeriodMS != 500 {
		t.Errorf("Expected periods 80..500, got %d..%d", tun.MinBlinkPeriodMS, tun.MaxBlinkPeriodMS)
	}
	if tun.CalibrationSamples != 50 || tun.CalibrationDelay != 10*time.Millisecond {
		t.Errorf("Expected default calibration, got %d samples %v", tun.CalibrationSamples, tun.CalibrationDelay)
	}
	if cfg.Monitor.Baud != 115200 {
		t.Errorf("Expected default baud, got %d", cfg.Monitor.Baud)
	}
}

func TestLoadChannelZeroIsExplicit(t *testing.T) {
	cfg, err := Load([]byte(`{"axes": {"y": {"channel": 1}, "x": {"channel": 0}}}`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	tun := cfg.Tunables()
	if tun.Channels[core.AxisY] != 1 || tun.Channels[core.AxisX] != 0 {
		t.Errorf("Expected swapped channels, got %v", tun.Channels)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected swapped channels to validate, got %v", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	if _, err := Load([]byte(`{"axes":`)); err == nil {
		t.Error("Expected error for truncated JSON")
	}
}

func TestWS2812DefaultPin(t *testing.T) {
	cfg, err := Load([]byte(`{"indicator": {"kind": "ws2812"}}`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Indicator.Pin != 7 {
		t.Errorf("Expected matrix pin 7, got %d", cfg.Indicator.Pin)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"default", func(*Config) {}, nil},
		{"min above max", func(c *Config) { c.Blink.MinPeriodMS = 600 }, core.ErrInvalidTunables},
		{"duplicate channel", func(c *Config) { c.Axes.X.Channel = c.Axes.Y.Channel }, core.ErrInvalidTunables},
		{"unknown indicator", func(c *Config) { c.Indicator.Kind = "buzzer" }, ErrIndicatorKind},
		{"zero dwell", func(c *Config) { c.ChannelDwellMS = 0 }, ErrChannelDwell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}
