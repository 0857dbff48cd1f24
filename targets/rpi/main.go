//go:build linux && !tinygo

// Command rpi runs joyblink on a Raspberry Pi with the joystick wired to an
// ADS1115 on I2C and the indicator LED on a GPIO pin.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"joyblink/config"
	"joyblink/core"
	"joyblink/host/monitor"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	i2cBus     = flag.String("i2c", "", "I2C bus name (default: first available)")
	adsAddr    = flag.Uint("addr", 0x48, "ADS1115 I2C address")
	logLevel   = flag.String("log-level", "", "Log level (overrides config)")
)

const drainInterval = 20 * time.Millisecond

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadYAMLFile(*configPath); err != nil {
			return err
		}
	}
	if *logLevel != "" {
		cfg.Monitor.LogLevel = *logLevel
	}
	level, err := monitor.ParseLogLevel(cfg.Monitor.LogLevel)
	if err != nil {
		return err
	}
	logger := monitor.SetupLogger(os.Stdout, level)
	core.SetDebugWriter(func(s string) { logger.Debug(s) })

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}
	bus, err := i2creg.Open(*i2cBus)
	if err != nil {
		return fmt.Errorf("open i2c bus %q: %w", *i2cBus, err)
	}
	defer bus.Close()

	tun := cfg.Tunables()
	adc, err := newADSDriver(bus, uint16(*adsAddr), tun.ADCFullScale)
	if err != nil {
		return err
	}
	defer adc.Halt()
	for _, ch := range tun.Channels {
		if err := adc.ConfigureChannel(ch); err != nil {
			return err
		}
	}

	gpio := newPeriphGPIODriver()
	led, err := core.NewPinIndicator(gpio, core.GPIOPin(cfg.Indicator.Pin))
	if err != nil {
		return fmt.Errorf("indicator on GPIO%d: %w", cfg.Indicator.Pin, err)
	}
	defer led.Set(false)

	events := core.NewEventLog(cfg.EventLogSize)
	js, err := core.NewJoystick(tun, led, events)
	if err != nil {
		return err
	}
	ticker := core.NewHostTicker(js.OnTickEpoch)
	js.SetTickDriver(ticker)
	defer ticker.CancelTick()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("calibrating joystick, hold it at rest", "samples", tun.CalibrationSamples)
	if err := js.Calibrate(adc, time.Sleep); err != nil {
		return err
	}

	sink := monitor.SlogSink{Logger: logger}
	publish := func() {
		events.Drain(func(e core.Event) { sink.Publish(monitor.FromCore(e)) })
	}
	publish()

	sampler := &core.Sampler{
		ADC:      adc,
		Channels: tun.Channels,
		Dwell:    cfg.ChannelDwell(),
		OnSample: js.OnSampleReady,
		OnError: func(ch core.ADCChannelID, err error) {
			logger.Warn("adc read failed", "channel", ch, "error", err)
		},
	}
	done := make(chan error, 1)
	go func() { done <- sampler.Run(ctx) }()
	logger.Info("ready, move the joystick", "indicator_pin", cfg.Indicator.Pin)

	t := time.NewTicker(drainInterval)
	defer t.Stop()
	for {
		select {
		case err := <-done:
			publish()
			logIndicatorErrors(logger, led)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case <-t.C:
			publish()
		}
	}
}

func logIndicatorErrors(logger *slog.Logger, led *core.PinIndicator) {
	if led.Errors > 0 {
		logger.Warn("indicator write errors", "count", led.Errors)
	}
}
