//go:build rp2040

package main

import (
	"machine"
	"time"

	"joyblink/core"
)

// halt reports a fatal boot error and flashes pin rapidly forever.
func halt(pin machine.Pin, err error) {
	core.DebugPrintln("FATAL: " + err.Error())

	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for i := 0; ; i++ {
		pin.High()
		time.Sleep(100 * time.Millisecond)
		pin.Low()
		time.Sleep(100 * time.Millisecond)

		// Repeat the message for a monitor that connects late.
		if i%25 == 24 {
			core.DebugPrintln("FATAL: " + err.Error())
		}
	}
}
