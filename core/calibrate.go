package core

import "time"

// Calibrate samples each axis at rest and stores the integer average as its
// center. It must complete before samples are fed to OnSampleReady, which
// ignores everything until then. A read error aborts the whole calibration
// with a *CalibrationError; no center is stored.
//
// sleep is called between reads with CalibrationDelay; pass time.Sleep on
// hardware or nil to skip the delay.
func (j *Joystick) Calibrate(adc ADCDriver, sleep func(time.Duration)) error {
	state := j.g.enter()
	calibrated, haveTimer := j.calibrated, j.timer != nil
	j.g.exit(state)

	if calibrated {
		return ErrAlreadyCalibrated
	}
	if !haveTimer {
		return ErrNoTickDriver
	}

	n := uint32(j.tun.CalibrationSamples)
	var centers [AxisCount]uint16
	for axis := Axis(0); axis < AxisCount; axis++ {
		ch := j.tun.Channels[axis]
		var sum uint32
		for i := uint32(0); i < n; i++ {
			v, err := adc.ReadRaw(ch)
			if err != nil {
				return &CalibrationError{Axis: axis, Sample: int(i), Err: err}
			}
			sum += uint32(v)
			if sleep != nil && j.tun.CalibrationDelay > 0 {
				sleep(j.tun.CalibrationDelay)
			}
		}
		centers[axis] = uint16(sum / n)
	}

	state = j.g.enter()
	if j.calibrated {
		j.g.exit(state)
		return ErrAlreadyCalibrated
	}
	j.center = centers
	// Seed the previous sample so the first real sample is compared with
	// the rest position rather than zero.
	j.last = centers
	j.calibrated = true
	j.g.exit(state)

	j.events.Push(Event{Kind: EventCalibrated, Centers: centers, Clock: GetTime()})
	return nil
}
