//go:build rp2040

package main

import (
	"machine"
	"strconv"
	"time"

	"joyblink/config"
	"joyblink/core"
)

// Main loop panics recovered since boot.
var loopPanics uint32

func main() {
	InitUSB()
	core.SetDebugWriter(usbWriteLine)

	// Give the host time to open the serial port.
	time.Sleep(2 * time.Second)

	cfg := config.Default()
	errorPin := machine.Pin(cfg.Indicator.Pin)
	if cfg.Indicator.Kind != config.IndicatorGPIO {
		errorPin = machine.LED
	}
	printBanner(cfg)

	indicator, err := newIndicator(cfg.Indicator)
	if err != nil {
		halt(machine.LED, err)
	}

	events := core.NewEventLog(cfg.EventLogSize)
	js, err := core.NewJoystick(cfg.Tunables(), indicator, events)
	if err != nil {
		halt(errorPin, err)
	}
	js.SetTickDriver(core.NewSchedulerTicker(js.OnTick))

	adcDriver := NewRPAdcDriver()
	tun := js.Tunables()
	for _, ch := range tun.Channels {
		if err := adcDriver.ConfigureChannel(ch); err != nil {
			halt(errorPin, err)
		}
	}

	core.DebugPrintln("Calibrating joystick, hold it at rest...")
	UpdateSystemTime()
	if err := js.Calibrate(adcDriver, time.Sleep); err != nil {
		halt(errorPin, err)
	}
	UpdateSystemTime()
	core.PrintEvents(events)

	mux := newChannelMux(adcDriver, tun.Channels, core.TimerFromMS(cfg.ChannelDwellMS))
	adcDriver.StartFreeRunning(tun.Channels[core.AxisY], js.OnSampleReady)
	core.DebugPrintln("Ready. Move the joystick.")

	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopPanics++
				}
			}()

			UpdateSystemTime()
			core.ProcessTimers()
			mux.Poll(core.GetTime())
			core.PrintEvents(events)
		}()

		// Yield to other goroutines
		time.Sleep(10 * time.Microsecond)
	}
}

// printBanner lists the pin assignments.
func printBanner(cfg *config.Config) {
	tun := cfg.Tunables()
	core.DebugPrintln("--- joyblink ---")
	for axis := core.Axis(0); axis < core.AxisCount; axis++ {
		ch := int(tun.Channels[axis])
		line := "Axis " + axis.String() + ": ADC" + strconv.Itoa(ch) + " (GPIO" + strconv.Itoa(26+ch) + ")"
		if axis == core.BlinkAxis {
			line += ", drives blink"
		}
		core.DebugPrintln(line)
	}
	core.DebugPrintln("Indicator: " + cfg.Indicator.Kind + " on GPIO" + strconv.Itoa(int(cfg.Indicator.Pin)))
}
