//go:build !wasm

package serial

import (
	"errors"
	"strings"

	"go.bug.st/serial/enumerator"
)

// BoardVID is the USB vendor ID of RP2040 boards running TinyGo firmware.
const BoardVID = "2E8A"

// ErrNoBoard is returned by DetectBoard when no matching port is present.
var ErrNoBoard = errors.New("no joyblink board found")

// DetectBoard returns the device path of the first USB serial port whose
// vendor ID is BoardVID.
func DetectBoard() (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", err
	}
	if name, ok := pickBoard(ports); ok {
		return name, nil
	}
	return "", ErrNoBoard
}

func pickBoard(ports []*enumerator.PortDetails) (string, bool) {
	for _, p := range ports {
		if p.IsUSB && strings.EqualFold(p.VID, BoardVID) {
			return p.Name, true
		}
	}
	return "", false
}
