package core

import "errors"

var (
	// ErrInvalidTunables is wrapped by every *TunablesError.
	ErrInvalidTunables = errors.New("invalid tunables")

	ErrAlreadyCalibrated = errors.New("joystick already calibrated")
	ErrNoTickDriver      = errors.New("no tick driver attached")
)

// TunablesError describes a tunable that Validate rejected.
type TunablesError struct {
	Field  string
	Reason string
}

func (e *TunablesError) Error() string {
	return "invalid tunables: " + e.Field + " " + e.Reason
}

func (e *TunablesError) Unwrap() error { return ErrInvalidTunables }

// CalibrationError reports the ADC read that aborted calibration.
type CalibrationError struct {
	Axis   Axis
	Sample int
	Err    error
}

func (e *CalibrationError) Error() string {
	return "calibrate axis " + e.Axis.String() + ": sample " + itoa(e.Sample) + ": " + e.Err.Error()
}

func (e *CalibrationError) Unwrap() error { return e.Err }
