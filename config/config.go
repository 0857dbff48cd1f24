// Package config holds the board and monitor settings for joyblink and
// converts them into core tunables.
package config

import (
	"encoding/json"
	"errors"
	"time"

	"joyblink/core"
)

// Indicator kinds.
const (
	IndicatorGPIO   = "gpio"
	IndicatorWS2812 = "ws2812"
)

// ws2812Pin drives the BitDogLab 5x5 LED matrix.
const ws2812Pin = 7

// Config is the complete joyblink configuration. Zero fields are filled
// from Default when loading.
type Config struct {
	Calibration CalibrationConfig `json:"calibration" yaml:"calibration"`
	Axes        AxesConfig        `json:"axes" yaml:"axes"`
	Blink       BlinkConfig       `json:"blink" yaml:"blink"`

	FastMoveThreshold uint16 `json:"fast_move_threshold" yaml:"fast_move_threshold"`
	ADCFullScale      uint16 `json:"adc_full_scale" yaml:"adc_full_scale"`
	ChannelDwellMS    uint32 `json:"channel_dwell_ms" yaml:"channel_dwell_ms"`
	EventLogSize      int    `json:"event_log_size" yaml:"event_log_size"`

	Indicator IndicatorConfig `json:"indicator" yaml:"indicator"`
	Monitor   MonitorConfig   `json:"monitor" yaml:"monitor"`
}

// CalibrationConfig controls the rest-position average.
type CalibrationConfig struct {
	Samples uint16 `json:"samples" yaml:"samples"`
	DelayMS uint32 `json:"delay_ms" yaml:"delay_ms"`
}

// AxisConfig maps one joystick axis to an ADC channel.
type AxisConfig struct {
	Channel  *uint8 `json:"channel,omitempty" yaml:"channel,omitempty"`
	Deadzone uint16 `json:"deadzone" yaml:"deadzone"`
}

// AxesConfig holds both joystick axes.
type AxesConfig struct {
	Y AxisConfig `json:"y" yaml:"y"`
	X AxisConfig `json:"x" yaml:"x"`
}

// BlinkConfig bounds the indicator blink period.
type BlinkConfig struct {
	MinPeriodMS uint32 `json:"min_period_ms" yaml:"min_period_ms"`
	MaxPeriodMS uint32 `json:"max_period_ms" yaml:"max_period_ms"`
}

// IndicatorConfig selects the output that blinks.
type IndicatorConfig struct {
	Kind  string   `json:"kind" yaml:"kind"` // gpio or ws2812
	Pin   uint8    `json:"pin" yaml:"pin"`
	Color [3]uint8 `json:"color" yaml:"color"` // ws2812 only, R G B
}

// MonitorConfig is used by the host tools only.
type MonitorConfig struct {
	Device   string `json:"device" yaml:"device"`
	Baud     int    `json:"baud" yaml:"baud"`
	LogLevel string `json:"log_level" yaml:"log_level"`

	MQTTBroker   string `json:"mqtt_broker" yaml:"mqtt_broker"`
	MQTTTopic    string `json:"mqtt_topic" yaml:"mqtt_topic"`
	MQTTClientID string `json:"mqtt_client_id" yaml:"mqtt_client_id"`
}

// Load parses a JSON configuration and applies defaults.
func Load(jsonData []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func channel(n uint8) *uint8 { return &n }

// Default returns the BitDogLab layout: Y on ADC0 (GPIO26), X on ADC1
// (GPIO27), blue LED on GPIO12.
func Default() *Config {
	t := core.DefaultTunables()
	return &Config{
		Calibration: CalibrationConfig{
			Samples: t.CalibrationSamples,
			DelayMS: uint32(t.CalibrationDelay / time.Millisecond),
		},
		Axes: AxesConfig{
			Y: AxisConfig{Channel: channel(uint8(t.Channels[core.AxisY])), Deadzone: t.Deadzone[core.AxisY]},
			X: AxisConfig{Channel: channel(uint8(t.Channels[core.AxisX])), Deadzone: t.Deadzone[core.AxisX]},
		},
		Blink: BlinkConfig{
			MinPeriodMS: t.MinBlinkPeriodMS,
			MaxPeriodMS: t.MaxBlinkPeriodMS,
		},
		FastMoveThreshold: t.FastMoveThreshold,
		ADCFullScale:      t.ADCFullScale,
		ChannelDwellMS:    20,
		EventLogSize:      core.DefaultEventLogSize,
		Indicator: IndicatorConfig{
			Kind:  IndicatorGPIO,
			Pin:   12,
			Color: [3]uint8{0, 0, 64},
		},
		Monitor: MonitorConfig{
			Baud:         115200,
			LogLevel:     "info",
			MQTTTopic:    "joyblink",
			MQTTClientID: "joyblink-monitor",
		},
	}
}

// applyDefaults fills in missing configuration values
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Calibration.Samples == 0 {
		cfg.Calibration.Samples = def.Calibration.Samples
	}
	if cfg.Calibration.DelayMS == 0 {
		cfg.Calibration.DelayMS = def.Calibration.DelayMS
	}

	// Channel 0 is valid, so only a missing channel takes the default.
	if cfg.Axes.Y.Channel == nil {
		cfg.Axes.Y.Channel = def.Axes.Y.Channel
	}
	if cfg.Axes.X.Channel == nil {
		cfg.Axes.X.Channel = def.Axes.X.Channel
	}
	if cfg.Axes.Y.Deadzone == 0 {
		cfg.Axes.Y.Deadzone = def.Axes.Y.Deadzone
	}
	if cfg.Axes.X.Deadzone == 0 {
		cfg.Axes.X.Deadzone = def.Axes.X.Deadzone
	}

	if cfg.Blink.MinPeriodMS == 0 {
		cfg.Blink.MinPeriodMS = def.Blink.MinPeriodMS
	}
	if cfg.Blink.MaxPeriodMS == 0 {
		cfg.Blink.MaxPeriodMS = def.Blink.MaxPeriodMS
	}
	if cfg.FastMoveThreshold == 0 {
		cfg.FastMoveThreshold = def.FastMoveThreshold
	}
	if cfg.ADCFullScale == 0 {
		cfg.ADCFullScale = def.ADCFullScale
	}
	if cfg.ChannelDwellMS == 0 {
		cfg.ChannelDwellMS = def.ChannelDwellMS
	}
	if cfg.EventLogSize <= 0 {
		cfg.EventLogSize = def.EventLogSize
	}

	if cfg.Indicator.Kind == "" {
		cfg.Indicator.Kind = def.Indicator.Kind
	}
	if cfg.Indicator.Pin == 0 {
		switch cfg.Indicator.Kind {
		case IndicatorGPIO:
			cfg.Indicator.Pin = def.Indicator.Pin
		case IndicatorWS2812:
			cfg.Indicator.Pin = ws2812Pin
		}
	}
	if cfg.Indicator.Color == [3]uint8{} {
		cfg.Indicator.Color = def.Indicator.Color
	}

	if cfg.Monitor.Baud == 0 {
		cfg.Monitor.Baud = def.Monitor.Baud
	}
	if cfg.Monitor.LogLevel == "" {
		cfg.Monitor.LogLevel = def.Monitor.LogLevel
	}
	if cfg.Monitor.MQTTTopic == "" {
		cfg.Monitor.MQTTTopic = def.Monitor.MQTTTopic
	}
	if cfg.Monitor.MQTTClientID == "" {
		cfg.Monitor.MQTTClientID = def.Monitor.MQTTClientID
	}
}

// Tunables converts the configuration into core tunables.
func (c *Config) Tunables() core.Tunables {
	t := core.DefaultTunables()
	t.CalibrationSamples = c.Calibration.Samples
	t.CalibrationDelay = time.Duration(c.Calibration.DelayMS) * time.Millisecond
	t.Deadzone[core.AxisY] = c.Axes.Y.Deadzone
	t.Deadzone[core.AxisX] = c.Axes.X.Deadzone
	t.MinBlinkPeriodMS = c.Blink.MinPeriodMS
	t.MaxBlinkPeriodMS = c.Blink.MaxPeriodMS
	t.FastMoveThreshold = c.FastMoveThreshold
	t.ADCFullScale = c.ADCFullScale
	if c.Axes.Y.Channel != nil {
		t.Channels[core.AxisY] = core.ADCChannelID(*c.Axes.Y.Channel)
	}
	if c.Axes.X.Channel != nil {
		t.Channels[core.AxisX] = core.ADCChannelID(*c.Axes.X.Channel)
	}
	return t
}

var (
	ErrIndicatorKind = errors.New("config: unknown indicator kind")
	ErrChannelDwell  = errors.New("config: channel dwell must be at least 1ms")
)

// Validate checks the tunables and the board settings.
func (c *Config) Validate() error {
	if err := c.Tunables().Validate(); err != nil {
		return err
	}
	switch c.Indicator.Kind {
	case IndicatorGPIO, IndicatorWS2812:
	default:
		return ErrIndicatorKind
	}
	if c.ChannelDwellMS == 0 {
		return ErrChannelDwell
	}
	return nil
}

// ChannelDwell returns how long the ADC stays on one channel before the
// main loop switches to the other.
func (c *Config) ChannelDwell() time.Duration {
	return time.Duration(c.ChannelDwellMS) * time.Millisecond
}
