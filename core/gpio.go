package core

// Indicator is the light the joystick blinks.
type Indicator interface {
	Set(on bool)
}

// PinIndicator drives an LED on a GPIO output through a GPIODriver.
type PinIndicator struct {
	Driver GPIODriver
	Pin    GPIOPin

	// Errors counts SetPin failures. Set runs in interrupt context and has
	// nowhere to report them.
	Errors uint32
}

// NewPinIndicator configures pin as an output and switches it off.
func NewPinIndicator(d GPIODriver, pin GPIOPin) (*PinIndicator, error) {
	if err := d.ConfigureOutput(pin); err != nil {
		return nil, err
	}
	if err := d.SetPin(pin, false); err != nil {
		return nil, err
	}
	return &PinIndicator{Driver: d, Pin: pin}, nil
}

// Set drives the pin high for on.
func (p *PinIndicator) Set(on bool) {
	if err := p.Driver.SetPin(p.Pin, on); err != nil {
		p.Errors++
	}
}

// WriterIndicator adapts a fallible output, such as an LED strip, to an
// Indicator.
type WriterIndicator struct {
	Write func(on bool) error

	// Errors counts Write failures, as for PinIndicator.
	Errors uint32
}

func (w *WriterIndicator) Set(on bool) {
	if err := w.Write(on); err != nil {
		w.Errors++
	}
}
