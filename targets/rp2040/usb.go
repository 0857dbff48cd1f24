//go:build rp2040

package main

import "machine"

var (
	crlf = []byte("\r\n")

	// usbWriteFailures counts lines lost while no host has the port open.
	usbWriteFailures uint32
)

// InitUSB configures machine.Serial, which is USB CDC-ACM on RP2040.
func InitUSB() {
	machine.Serial.Configure(machine.UARTConfig{})
}

// usbWriteLine is the core debug writer: one line per call, CRLF
// terminated. Lines are dropped rather than retried on error.
func usbWriteLine(s string) {
	if _, err := machine.Serial.Write([]byte(s)); err != nil {
		usbWriteFailures++
		return
	}
	if _, err := machine.Serial.Write(crlf); err != nil {
		usbWriteFailures++
	}
}
