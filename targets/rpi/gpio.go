//go:build linux && !tinygo

package main

import (
	"errors"
	"strconv"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"joyblink/core"
)

var errNoPin = errors.New("gpio pin not found")

// periphGPIODriver implements core.GPIODriver with periph.io pins, named
// by BCM number.
type periphGPIODriver struct {
	mu   sync.Mutex
	pins map[core.GPIOPin]gpio.PinIO
}

func newPeriphGPIODriver() *periphGPIODriver {
	return &periphGPIODriver{pins: make(map[core.GPIOPin]gpio.PinIO)}
}

func (d *periphGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.pins[pin]; ok {
		return nil
	}
	p := gpioreg.ByName("GPIO" + strconv.Itoa(int(pin)))
	if p == nil {
		return errNoPin
	}
	if err := p.Out(gpio.Low); err != nil {
		return err
	}
	d.pins[pin] = p
	return nil
}

func (d *periphGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	d.mu.Lock()
	p, ok := d.pins[pin]
	d.mu.Unlock()
	if !ok {
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		return d.SetPin(pin, value)
	}
	return p.Out(gpio.Level(value))
}

func (d *periphGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	d.mu.Lock()
	p, ok := d.pins[pin]
	d.mu.Unlock()
	if !ok {
		return false, nil
	}
	return bool(p.Read()), nil
}
