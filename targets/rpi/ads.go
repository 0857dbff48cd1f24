//go:build linux && !tinygo

package main

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"

	"joyblink/core"
)

// ADS1115 settings for a joystick powered from 3.3V.
const (
	adsRate = 475 * physic.Hertz
	adsVRef = 3300 * physic.MilliVolt
)

var errADSChannel = errors.New("ads1115: channel must be 0-3")

// adsDriver implements core.ADCDriver on an ADS1115 over I2C. Readings
// are rescaled to the 12-bit range the core expects.
type adsDriver struct {
	dev       *ads1x15.Dev
	fullScale uint16

	mu   sync.Mutex
	pins map[core.ADCChannelID]ads1x15.PinADC
}

func newADSDriver(bus i2c.Bus, addr uint16, fullScale uint16) (*adsDriver, error) {
	opts := ads1x15.DefaultOpts
	if addr != 0 {
		opts.I2cAddress = addr
	}
	dev, err := ads1x15.NewADS1115(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("ads1115 at %#x: %w", opts.I2cAddress, err)
	}
	return &adsDriver{
		dev:       dev,
		fullScale: fullScale,
		pins:      make(map[core.ADCChannelID]ads1x15.PinADC),
	}, nil
}

func (d *adsDriver) ConfigureChannel(ch core.ADCChannelID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.configureLocked(ch)
}

func (d *adsDriver) configureLocked(ch core.ADCChannelID) error {
	if _, ok := d.pins[ch]; ok {
		return nil
	}

	var c ads1x15.Channel
	switch ch {
	case 0:
		c = ads1x15.Channel0
	case 1:
		c = ads1x15.Channel1
	case 2:
		c = ads1x15.Channel2
	case 3:
		c = ads1x15.Channel3
	default:
		return errADSChannel
	}

	pin, err := d.dev.PinForChannel(c, adsVRef, adsRate, ads1x15.BestQuality)
	if err != nil {
		return fmt.Errorf("ads1115 channel %d: %w", ch, err)
	}
	d.pins[ch] = pin
	return nil
}

// ReadRaw performs one single-shot conversion.
func (d *adsDriver) ReadRaw(ch core.ADCChannelID) (core.ADCValue, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.configureLocked(ch); err != nil {
		return 0, err
	}
	s, err := d.pins[ch].Read()
	if err != nil {
		return 0, fmt.Errorf("ads1115 channel %d: %w", ch, err)
	}
	return scaleVoltage(s.V, adsVRef, d.fullScale), nil
}

// Halt stops every configured channel.
func (d *adsDriver) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for _, p := range d.pins {
		errs = append(errs, p.Halt())
	}
	return errors.Join(errs...)
}

// scaleVoltage maps 0..vref onto 0..fullScale, clamping outside values.
func scaleVoltage(v, vref physic.ElectricPotential, fullScale uint16) core.ADCValue {
	if v <= 0 || vref <= 0 {
		return 0
	}
	if v >= vref {
		return core.ADCValue(fullScale)
	}
	return core.ADCValue(int64(v) * int64(fullScale) / int64(vref))
}
