package core

import "time"

// Axis identifies one joystick axis.
type Axis uint8

const (
	AxisY Axis = iota
	AxisX
	AxisCount
)

// BlinkAxis is the axis whose deflection drives the indicator blink rate.
const BlinkAxis = AxisY

func (a Axis) String() string {
	switch a {
	case AxisY:
		return "Y"
	case AxisX:
		return "X"
	default:
		return "?"
	}
}

// Defaults for the BitDogLab joystick: 12-bit ADC, Y on ADC0 (GPIO26),
// X on ADC1 (GPIO27).
const (
	DefaultCalibrationSamples = 50
	DefaultCalibrationDelay   = 10 * time.Millisecond
	DefaultDeadzone           = 150
	DefaultMinBlinkPeriodMS   = 50
	DefaultMaxBlinkPeriodMS   = 500
	DefaultFastMoveThreshold  = 250
	DefaultADCFullScale       = 4095
)

// Tunables holds every constant that affects joystick behavior.
type Tunables struct {
	CalibrationSamples uint16
	CalibrationDelay   time.Duration

	Deadzone [AxisCount]uint16

	// Blink period bounds; a larger deflection gives a shorter period.
	MinBlinkPeriodMS uint32
	MaxBlinkPeriodMS uint32

	FastMoveThreshold uint16
	ADCFullScale      uint16

	// Channels maps each axis to the ADC channel that samples it.
	Channels [AxisCount]ADCChannelID
}

// DefaultTunables returns the stock board tunables.
func DefaultTunables() Tunables {
	return Tunables{
		CalibrationSamples: DefaultCalibrationSamples,
		CalibrationDelay:   DefaultCalibrationDelay,
		Deadzone:           [AxisCount]uint16{AxisY: DefaultDeadzone, AxisX: DefaultDeadzone},
		MinBlinkPeriodMS:   DefaultMinBlinkPeriodMS,
		MaxBlinkPeriodMS:   DefaultMaxBlinkPeriodMS,
		FastMoveThreshold:  DefaultFastMoveThreshold,
		ADCFullScale:       DefaultADCFullScale,
		Channels:           [AxisCount]ADCChannelID{AxisY: 0, AxisX: 1},
	}
}

// Validate reports the first unusable value as a *TunablesError.
func (t Tunables) Validate() error {
	switch {
	case t.CalibrationSamples == 0:
		return &TunablesError{Field: "CalibrationSamples", Reason: "must be at least 1"}
	case t.MinBlinkPeriodMS == 0:
		return &TunablesError{Field: "MinBlinkPeriodMS", Reason: "must be at least 1"}
	case t.MinBlinkPeriodMS > t.MaxBlinkPeriodMS:
		return &TunablesError{Field: "MaxBlinkPeriodMS", Reason: "must not be below MinBlinkPeriodMS"}
	case t.ADCFullScale == 0:
		return &TunablesError{Field: "ADCFullScale", Reason: "must be at least 1"}
	case t.Channels[AxisY] == t.Channels[AxisX]:
		return &TunablesError{Field: "Channels", Reason: "axes must use distinct channels"}
	}
	return nil
}

// axisFor maps an ADC channel to the axis it samples.
func (t *Tunables) axisFor(ch ADCChannelID) (Axis, bool) {
	for a := Axis(0); a < AxisCount; a++ {
		if t.Channels[a] == ch {
			return a, true
		}
	}
	return 0, false
}
