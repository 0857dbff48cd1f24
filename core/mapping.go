package core

// Deflect returns the signed distance of sample from center and whether it
// lies outside the deadzone. A sample exactly deadzone away is not activated.
func Deflect(sample, center, deadzone uint16) (delta int32, activated bool) {
	delta = int32(sample) - int32(center)
	return delta, abs32(delta) > int32(deadzone)
}

// BlinkPeriod maps a deflection beyond the deadzone to a blink period in
// milliseconds: linear from MaxBlinkPeriodMS at the deadzone edge down to
// MinBlinkPeriodMS at half of full scale. The result is always within
// [MinBlinkPeriodMS, MaxBlinkPeriodMS].
func BlinkPeriod(delta int32, deadzone uint16, t Tunables) uint32 {
	maxEffective := int32(t.ADCFullScale)/2 - int32(deadzone)
	if maxEffective < 1 {
		maxEffective = 1
	}

	effective := abs32(delta) - int32(deadzone)
	if effective < 0 {
		effective = 0
	}
	if effective > maxEffective {
		effective = maxEffective
	}

	span := int64(t.MaxBlinkPeriodMS) - int64(t.MinBlinkPeriodMS)
	period := int64(t.MaxBlinkPeriodMS) - int64(effective)*span/int64(maxEffective)

	if period < int64(t.MinBlinkPeriodMS) {
		period = int64(t.MinBlinkPeriodMS)
	}
	if period > int64(t.MaxBlinkPeriodMS) {
		period = int64(t.MaxBlinkPeriodMS)
	}
	return uint32(period)
}

// IsFastMove reports whether two consecutive samples on one axis differ by
// more than threshold.
func IsFastMove(sample, previous, threshold uint16) bool {
	return abs32(int32(sample)-int32(previous)) > int32(threshold)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
