// Package mcu tracks a joyblink board connected over USB serial.
package mcu

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"joyblink/host/monitor"
	"joyblink/host/serial"
)

// fatalPrefix marks the line a board prints before halting.
const fatalPrefix = "FATAL: "

// Status is a summary of what the board has reported since connecting.
type Status struct {
	Calibrated bool
	CenterY    int64
	CenterX    int64
	Counts     map[string]int
	Active     map[string]bool // by axis
	Fatal      string
}

// MCU represents a connection to a joyblink board
type MCU struct {
	port   io.ReadCloser
	logger *slog.Logger

	mu     sync.Mutex
	status Status
}

// NewMCU wraps an open port. Tests pass any io.ReadCloser.
func NewMCU(port io.ReadCloser, logger *slog.Logger) *MCU {
	return &MCU{
		port:   port,
		logger: logger,
		status: Status{
			Counts: make(map[string]int),
			Active: make(map[string]bool),
		},
	}
}

// Connect opens the serial device and returns a board connection.
func Connect(cfg *serial.Config, logger *slog.Logger) (*MCU, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to board: %w", err)
	}
	return NewMCU(port, logger), nil
}

// Close closes the connection to the board
func (m *MCU) Close() error {
	return m.port.Close()
}

// Run reads lines until ctx is done or the port fails. Event lines update
// the status and go to sink; other lines are logged.
func (m *MCU) Run(ctx context.Context, sink monitor.Sink) error {
	return serial.ReadLines(ctx, m.port, func(line string) {
		m.handleLine(line, sink)
	})
}

func (m *MCU) handleLine(line string, sink monitor.Sink) {
	e, ok := monitor.ParseLine(line)
	if !ok {
		if msg, fatal := strings.CutPrefix(line, fatalPrefix); fatal {
			m.mu.Lock()
			m.status.Fatal = msg
			m.mu.Unlock()
			m.logger.Error("board halted", "reason", msg)
			return
		}
		if line != "" {
			m.logger.Info("board", "line", line)
		}
		return
	}

	m.apply(e)
	if err := sink.Publish(e); err != nil {
		m.logger.Warn("publish failed", "kind", e.Kind, "error", err)
	}
}

func (m *MCU) apply(e monitor.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.status.Counts[e.Kind]++
	switch e.Kind {
	case monitor.KindCalibrated:
		m.status.Calibrated = true
		m.status.CenterY, _ = e.Int("center_y")
		m.status.CenterX, _ = e.Int("center_x")
	case monitor.KindAxisActive:
		m.status.Active[e.Axis()] = true
	case monitor.KindAxisIdle:
		m.status.Active[e.Axis()] = false
	}
}

// Status returns a copy of the board status.
func (m *MCU) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.status
	s.Counts = make(map[string]int, len(m.status.Counts))
	for k, v := range m.status.Counts {
		s.Counts[k] = v
	}
	s.Active = make(map[string]bool, len(m.status.Active))
	for k, v := range m.status.Active {
		s.Active[k] = v
	}
	return s
}
