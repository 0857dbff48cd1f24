package core

import (
	"errors"
	"testing"
)

// MockGPIODriver is a test implementation of GPIODriver
type MockGPIODriver struct {
	pins       map[GPIOPin]bool
	configured map[GPIOPin]bool
	failSet    bool
}

func NewMockGPIODriver() *MockGPIODriver {
	return &MockGPIODriver{
		pins:       make(map[GPIOPin]bool),
		configured: make(map[GPIOPin]bool),
	}
}

var errPinFault = errors.New("pin fault")

func (m *MockGPIODriver) ConfigureOutput(pin GPIOPin) error {
	m.configured[pin] = true
	return nil
}

func (m *MockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	if m.failSet {
		return errPinFault
	}
	m.pins[pin] = value
	return nil
}

func (m *MockGPIODriver) GetPin(pin GPIOPin) (bool, error) {
	return m.pins[pin], nil
}

func TestPinIndicator(t *testing.T) {
	mock := NewMockGPIODriver()
	mock.pins[12] = true

	led, err := NewPinIndicator(mock, 12)
	if err != nil {
		t.Fatalf("NewPinIndicator failed: %v", err)
	}
	if !mock.configured[12] {
		t.Error("Expected pin 12 configured as output")
	}
	if mock.pins[12] {
		t.Error("Expected indicator to start off")
	}

	led.Set(true)
	if v, _ := mock.GetPin(12); !v {
		t.Error("Expected pin high after Set(true)")
	}
	led.Set(false)
	if v, _ := mock.GetPin(12); v {
		t.Error("Expected pin low after Set(false)")
	}
}

func TestPinIndicatorCountsErrors(t *testing.T) {
	mock := NewMockGPIODriver()
	led, err := NewPinIndicator(mock, 25)
	if err != nil {
		t.Fatalf("NewPinIndicator failed: %v", err)
	}

	mock.failSet = true
	led.Set(true)
	led.Set(false)
	if led.Errors != 2 {
		t.Errorf("Expected 2 errors, got %d", led.Errors)
	}

	if _, err := NewPinIndicator(mock, 3); !errors.Is(err, errPinFault) {
		t.Errorf("Expected construction to fail on a faulty pin, got %v", err)
	}
}

func TestWriterIndicatorCountsErrors(t *testing.T) {
	var fail bool
	var writes []bool
	led := &WriterIndicator{Write: func(on bool) error {
		writes = append(writes, on)
		if fail {
			return errPinFault
		}
		return nil
	}}

	led.Set(true)
	led.Set(false)
	if led.Errors != 0 {
		t.Errorf("Expected no errors, got %d", led.Errors)
	}

	fail = true
	led.Set(true)
	if led.Errors != 1 {
		t.Errorf("Expected 1 error, got %d", led.Errors)
	}
	if len(writes) != 3 || !writes[2] {
		t.Errorf("Expected every Set to reach the writer, got %v", writes)
	}
}
