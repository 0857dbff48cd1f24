//go:build rp2040

package main

import (
	"machine"

	"joyblink/core"
)

// RPGPIODriver implements core.GPIODriver for RP2040 output pins.
type RPGPIODriver struct {
	configuredPins map[core.GPIOPin]machine.Pin
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

// ConfigureOutput configures a pin as a digital output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}
	// GPIO numbers map directly onto machine.Pin
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.configuredPins[pin] = p
	return nil
}

// SetPin drives a configured pin; unconfigured pins are set up first.
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	p, exists := d.configuredPins[pin]
	if !exists {
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		p = d.configuredPins[pin]
	}
	p.Set(value)
	return nil
}

// GetPin reads back the pin level
func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	p, exists := d.configuredPins[pin]
	if !exists {
		return false, nil
	}
	return p.Get(), nil
}
