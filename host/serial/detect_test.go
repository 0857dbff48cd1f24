//go:build !wasm

package serial

import (
	"testing"

	"go.bug.st/serial/enumerator"
)

func TestPickBoard(t *testing.T) {
	tests := []struct {
		name  string
		ports []*enumerator.PortDetails
		want  string
		ok    bool
	}{
		{"none", nil, "", false},
		{
			name: "skips non-usb and other vendors",
			ports: []*enumerator.PortDetails{
				{Name: "/dev/ttyS0"},
				{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001"},
				{Name: "/dev/ttyACM0", IsUSB: true, VID: "2e8a", PID: "000a"},
			},
			want: "/dev/ttyACM0",
			ok:   true,
		},
		{
			name: "first match wins",
			ports: []*enumerator.PortDetails{
				{Name: "/dev/ttyACM1", IsUSB: true, VID: "2E8A"},
				{Name: "/dev/ttyACM2", IsUSB: true, VID: "2E8A"},
			},
			want: "/dev/ttyACM1",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickBoard(tt.ports)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Expected %q/%v, got %q/%v", tt.want, tt.ok, got, ok)
			}
		})
	}
}
