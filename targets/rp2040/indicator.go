//go:build rp2040

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"

	"joyblink/config"
	"joyblink/core"
)

// matrixIndicator blinks the first LED of a WS2812 chain. Writes are
// bit-banged with interrupts off, so the whole frame is one LED long.
type matrixIndicator struct {
	dev   ws2812.Device
	color color.RGBA
	frame [1]color.RGBA
}

func newMatrixIndicator(pin machine.Pin, rgb [3]uint8) (*core.WriterIndicator, error) {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	m := &matrixIndicator{
		dev:   ws2812.New(pin),
		color: color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2]},
	}
	if err := m.write(false); err != nil {
		return nil, err
	}
	return &core.WriterIndicator{Write: m.write}, nil
}

func (m *matrixIndicator) write(on bool) error {
	if on {
		m.frame[0] = m.color
	} else {
		m.frame[0] = color.RGBA{}
	}
	return m.dev.WriteColors(m.frame[:])
}

// newIndicator builds the configured indicator.
func newIndicator(cfg config.IndicatorConfig) (core.Indicator, error) {
	if cfg.Kind == config.IndicatorWS2812 {
		return newMatrixIndicator(machine.Pin(cfg.Pin), cfg.Color)
	}

	gpio := NewRPGPIODriver()
	led, err := core.NewPinIndicator(gpio, core.GPIOPin(cfg.Pin))
	if err != nil {
		return nil, err
	}
	return led, nil
}
