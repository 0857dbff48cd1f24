//go:build rp2040

package main

import (
	"device/rp"
	"errors"
	"machine"
	"runtime/interrupt"

	"joyblink/core"
)

// ADC clock is 48 MHz; one conversion takes 96 cycles.
const (
	adcClockHz    = 48000000
	adcSampleRate = 1000 // free-running samples per second
)

var (
	errUnsupportedChannel = errors.New("unsupported ADC channel")
	errConversion         = errors.New("adc conversion error")
)

// RpAdcDriver drives the RP2040 SAR ADC directly through its registers.
// Blocking reads (ReadRaw) are used for calibration; afterwards the ADC runs
// free at adcSampleRate and every result is delivered through the FIFO
// interrupt to the sample handler.
type RpAdcDriver struct {
	configured [4]bool
	running    bool
	onSample   func(raw uint16, ch core.ADCChannelID)
	irq        interrupt.Interrupt
}

// adc is referenced from the interrupt handler, which cannot capture state.
var adc *RpAdcDriver

// NewRPAdcDriver enables the ADC block. Channels are set up with
// ConfigureChannel.
func NewRPAdcDriver() *RpAdcDriver {
	machine.InitADC()
	adc = &RpAdcDriver{}
	return adc
}

// ConfigureChannel routes the GPIO of an external channel (0-3) to the ADC.
func (d *RpAdcDriver) ConfigureChannel(ch core.ADCChannelID) error {
	var pin machine.Pin
	switch ch {
	case 0:
		pin = machine.ADC0
	case 1:
		pin = machine.ADC1
	case 2:
		pin = machine.ADC2
	case 3:
		pin = machine.ADC3
	default:
		return errUnsupportedChannel
	}
	if d.configured[ch] {
		return nil
	}

	a := machine.ADC{Pin: pin}
	if err := a.Configure(machine.ADCConfig{}); err != nil {
		return err
	}
	d.configured[ch] = true
	return nil
}

// ReadRaw performs one blocking conversion and returns the 12-bit result.
// Only valid while the ADC is not free-running.
func (d *RpAdcDriver) ReadRaw(ch core.ADCChannelID) (core.ADCValue, error) {
	if ch > 3 {
		return 0, errUnsupportedChannel
	}
	if !d.configured[ch] {
		if err := d.ConfigureChannel(ch); err != nil {
			return 0, err
		}
	}

	selectChannel(ch)
	rp.ADC.CS.SetBits(rp.ADC_CS_START_ONCE)
	for !rp.ADC.CS.HasBits(rp.ADC_CS_READY) {
	}
	if rp.ADC.CS.HasBits(rp.ADC_CS_ERR) {
		return 0, errConversion
	}
	return core.ADCValue(rp.ADC.RESULT.Get() & 0xfff), nil
}

// StartFreeRunning enables the FIFO, raises an interrupt for every sample
// and starts continuous conversions on ch.
func (d *RpAdcDriver) StartFreeRunning(ch core.ADCChannelID, onSample func(raw uint16, ch core.ADCChannelID)) {
	d.onSample = onSample

	// Sample period is 1 + INT cycles of the ADC clock.
	rp.ADC.DIV.Set(uint32(adcClockHz/adcSampleRate-1) << rp.ADC_DIV_INT_Pos)

	// FIFO on, no DMA, no shift, threshold 1.
	rp.ADC.FCS.Set(rp.ADC_FCS_EN | 1<<rp.ADC_FCS_THRESH_Pos)
	drainFIFO()

	d.irq = interrupt.New(rp.IRQ_ADC_IRQ_FIFO, adcIRQHandler)
	rp.ADC.INTE.Set(rp.ADC_INTE_FIFO)
	d.irq.Enable()

	selectChannel(ch)
	d.run(true)
}

// SwitchChannel moves the free-running ADC to ch. Results still in the
// FIFO belong to the previous channel and are discarded.
func (d *RpAdcDriver) SwitchChannel(ch core.ADCChannelID) {
	state := interrupt.Disable()
	d.run(false)
	for !rp.ADC.CS.HasBits(rp.ADC_CS_READY) {
	}
	selectChannel(ch)
	drainFIFO()
	d.run(true)
	interrupt.Restore(state)
}

func (d *RpAdcDriver) run(on bool) {
	if on {
		rp.ADC.CS.SetBits(rp.ADC_CS_START_MANY)
	} else {
		rp.ADC.CS.ClearBits(rp.ADC_CS_START_MANY)
	}
	d.running = on
}

// selectedChannel reports the channel the ADC is converting. Round robin
// is off, so every FIFO entry belongs to it.
func selectedChannel() core.ADCChannelID {
	return core.ADCChannelID((rp.ADC.CS.Get() & rp.ADC_CS_AINSEL_Msk) >> rp.ADC_CS_AINSEL_Pos)
}

func selectChannel(ch core.ADCChannelID) {
	rp.ADC.CS.ReplaceBits(uint32(ch)<<rp.ADC_CS_AINSEL_Pos, rp.ADC_CS_AINSEL_Msk, 0)
}

func drainFIFO() {
	for !rp.ADC.FCS.HasBits(rp.ADC_FCS_EMPTY) {
		rp.ADC.FIFO.Get()
	}
}

func adcIRQHandler(interrupt.Interrupt) {
	ch := selectedChannel()
	for !rp.ADC.FCS.HasBits(rp.ADC_FCS_EMPTY) {
		v := rp.ADC.FIFO.Get()
		if v&rp.ADC_FIFO_ERR != 0 {
			continue
		}
		if adc != nil && adc.onSample != nil {
			adc.onSample(uint16(v&rp.ADC_FIFO_VAL_Msk), ch)
		}
	}
}
