package serial

import (
	"errors"
	"io"
)

// Port represents a serial port interface. Tests substitute an in-memory
// implementation.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate; USB CDC ignores it
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration used for a joyblink board.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}

// IdleReader wraps a port opened with a read timeout. On Linux a tty read
// that times out with no data returns (0, io.EOF); IdleReader reports it as
// an empty read so callers keep polling. A real disconnect surfaces as an
// I/O error instead.
type IdleReader struct {
	R io.Reader
}

func (i IdleReader) Read(b []byte) (int, error) {
	n, err := i.R.Read(b)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, nil
	}
	return n, err
}
