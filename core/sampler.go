//go:build !tinygo

package core

import (
	"context"
	"time"
)

// DefaultSampleInterval is the read period used when Sampler.Interval is zero.
const DefaultSampleInterval = 5 * time.Millisecond

// Sampler polls a blocking ADCDriver on hosted platforms and feeds the
// results to OnSample, alternating between Channels every Dwell. It plays
// the role of the conversion-complete interrupt on boards without one.
type Sampler struct {
	ADC      ADCDriver
	Channels [AxisCount]ADCChannelID
	Interval time.Duration
	Dwell    time.Duration // zero switches channel on every read

	OnSample func(raw uint16, ch ADCChannelID)
	OnError  func(ch ADCChannelID, err error) // optional
}

// Run samples until ctx is done and returns ctx.Err().
func (s *Sampler) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	idx := 0
	switched := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if now.Sub(switched) >= s.Dwell {
				idx = (idx + 1) % len(s.Channels)
				switched = now
			}
			ch := s.Channels[idx]
			v, err := s.ADC.ReadRaw(ch)
			if err != nil {
				if s.OnError != nil {
					s.OnError(ch, err)
				}
				continue
			}
			s.OnSample(uint16(v), ch)
		}
	}
}
