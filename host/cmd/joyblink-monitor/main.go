package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"joyblink/config"
	"joyblink/host/mcu"
	"joyblink/host/monitor"
	"joyblink/host/serial"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	device     = flag.String("device", "", "Serial device path (overrides config; detected if empty)")
	baud       = flag.Int("baud", 0, "Baud rate, ignored for USB CDC (overrides config)")
	logLevel   = flag.String("log-level", "", "Log level: error, warn, info, debug (overrides config)")
	mqttBroker = flag.String("mqtt", "", "MQTT broker URL, e.g. tcp://localhost:1883 (overrides config)")
	httpAddr   = flag.String("http", "", "Serve events over WebSocket at this address, e.g. :8080")
)

const reconnectDelay = time.Second

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadYAMLFile(*configPath); err != nil {
			return nil, err
		}
	}

	if *device != "" {
		cfg.Monitor.Device = *device
	}
	if *baud != 0 {
		cfg.Monitor.Baud = *baud
	}
	if *logLevel != "" {
		cfg.Monitor.LogLevel = *logLevel
	}
	if *mqttBroker != "" {
		cfg.Monitor.MQTTBroker = *mqttBroker
	}
	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level, err := monitor.ParseLogLevel(cfg.Monitor.LogLevel)
	if err != nil {
		return err
	}
	logger := monitor.SetupLogger(os.Stdout, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks := monitor.Fanout{monitor.SlogSink{Logger: logger}}

	if cfg.Monitor.MQTTBroker != "" {
		mq, err := monitor.ConnectMQTT(monitor.MQTTConfig{
			Broker:   cfg.Monitor.MQTTBroker,
			ClientID: cfg.Monitor.MQTTClientID,
			Topic:    cfg.Monitor.MQTTTopic,
		}, logger)
		if err != nil {
			return err
		}
		defer mq.Close()
		sinks = append(sinks, mq)
	}

	if *httpAddr != "" {
		hub := NewHubServer(*httpAddr, logger)
		defer hub.Shutdown()
		sinks = append(sinks, hub.Hub)
	}

	if cfg.Monitor.Device == "" {
		dev, err := serial.DetectBoard()
		if err != nil {
			return fmt.Errorf("no -device given: %w", err)
		}
		logger.Info("detected board", "device", dev)
		cfg.Monitor.Device = dev
	}

	serialCfg := serial.DefaultConfig(cfg.Monitor.Device)
	serialCfg.Baud = cfg.Monitor.Baud

	// The board re-enumerates on reset; keep reconnecting until stopped.
	for {
		err := monitorOnce(ctx, serialCfg, sinks, logger)
		if ctx.Err() != nil {
			return nil
		}
		logger.Warn("board connection ended", "device", serialCfg.Device, "error", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

func monitorOnce(ctx context.Context, cfg *serial.Config, sink monitor.Sink, logger *slog.Logger) error {
	board, err := mcu.Connect(cfg, logger)
	if err != nil {
		return err
	}
	defer board.Close()
	logger.Info("connected", "device", cfg.Device)

	err = board.Run(ctx, sink)

	s := board.Status()
	logger.Info("session summary",
		"calibrated", s.Calibrated,
		"center_y", s.CenterY,
		"center_x", s.CenterX,
		"fast_moves", s.Counts[monitor.KindFastMove],
		"dropped", s.Counts[monitor.KindDropped],
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// HubServer serves a monitor.Hub over HTTP.
type HubServer struct {
	Hub    *monitor.Hub
	server *http.Server
}

// NewHubServer starts listening in the background.
func NewHubServer(addr string, logger *slog.Logger) *HubServer {
	hub := monitor.NewHub(logger)
	mux := http.NewServeMux()
	mux.Handle("/events", hub)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("serving events", "url", "ws://"+addr+"/events")
	return &HubServer{Hub: hub, server: srv}
}

// Shutdown stops the server and disconnects clients.
func (h *HubServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h.server.Shutdown(ctx)
	h.Hub.Close()
}
