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

	"joyblink/config"
	"joyblink/core"
	"joyblink/host/monitor"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	logLevel   = flag.String("log-level", "info", "Log level: error, warn, info, debug")
	noise      = flag.Uint("noise", 8, "Simulated ADC noise amplitude in counts")
	rest       = flag.Uint("rest", 2048, "Simulated rest position")
	mqttBroker = flag.String("mqtt", "", "Forward events to this MQTT broker")
)

// drainInterval is how often queued events are logged.
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

	level, err := monitor.ParseLogLevel(*logLevel)
	if err != nil {
		return err
	}
	logger := monitor.SetupLogger(os.Stdout, level)

	sinks := monitor.Fanout{monitor.SlogSink{Logger: logger}}
	if *mqttBroker != "" {
		mq, err := monitor.ConnectMQTT(monitor.MQTTConfig{
			Broker:   *mqttBroker,
			ClientID: cfg.Monitor.MQTTClientID + "-sim",
			Topic:    cfg.Monitor.MQTTTopic,
		}, logger)
		if err != nil {
			return err
		}
		defer mq.Close()
		sinks = append(sinks, mq)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	script := defaultScript(uint16(*rest))
	return simulate(ctx, cfg, script, uint16(*noise), sinks, logger)
}

// simulate runs the joystick core against the scripted stick until the
// script ends or ctx is done.
func simulate(ctx context.Context, cfg *config.Config, script []waypoint, noise uint16, sink monitor.Sink, logger *slog.Logger) error {
	tun := cfg.Tunables()
	indicator := &countingIndicator{}
	js, err := core.NewJoystick(tun, indicator, core.NewEventLog(cfg.EventLogSize))
	if err != nil {
		return err
	}
	ticker := core.NewHostTicker(js.OnTickEpoch)
	js.SetTickDriver(ticker)
	defer ticker.CancelTick()

	adc := newSimADC(tun.Channels, script, noise)
	logger.Info("calibrating, stick at rest", "samples", tun.CalibrationSamples, "delay", tun.CalibrationDelay)
	if err := js.Calibrate(adc, time.Sleep); err != nil {
		return err
	}

	publish := func() {
		js.Events().Drain(func(e core.Event) {
			if err := sink.Publish(monitor.FromCore(e)); err != nil {
				logger.Warn("publish failed", "error", err)
			}
		})
	}
	publish()

	end := script[len(script)-1].At + time.Second
	runCtx, cancel := context.WithTimeout(ctx, end-time.Since(adc.start))
	defer cancel()

	sampler := &core.Sampler{
		ADC:      adc,
		Channels: tun.Channels,
		Interval: time.Millisecond,
		Dwell:    cfg.ChannelDwell(),
		OnSample: js.OnSampleReady,
		OnError: func(ch core.ADCChannelID, err error) {
			logger.Error("adc read failed", "channel", ch, "error", err)
		},
	}
	done := make(chan error, 1)
	go func() { done <- sampler.Run(runCtx) }()

	t := time.NewTicker(drainInterval)
	defer t.Stop()
	for {
		select {
		case err := <-done:
			publish()
			snap := js.Snapshot()
			logger.Info("simulation finished",
				"blink_edges", indicator.Changes(),
				"blink", snap.Blink.String(),
				"dropped_events", js.Events().Dropped(),
			)
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case <-t.C:
			publish()
			if logger.Enabled(ctx, slog.LevelDebug) {
				snap := js.Snapshot()
				logger.Debug("state", "y", snap.Last[core.AxisY], "x", snap.Last[core.AxisX],
					"period_ms", snap.PeriodMS, "blink", snap.Blink.String())
			}
		}
	}
}
