//go:build rp2040

package main

import "joyblink/core"

// channelMux alternates the free-running ADC between the joystick axes.
// Each channel is converted for one dwell period before switching.
type channelMux struct {
	adc      *RpAdcDriver
	channels [core.AxisCount]core.ADCChannelID
	current  int
	dwell    uint32 // timer ticks
	switched uint32
}

func newChannelMux(adc *RpAdcDriver, channels [core.AxisCount]core.ADCChannelID, dwell uint32) *channelMux {
	return &channelMux{
		adc:      adc,
		channels: channels,
		dwell:    dwell,
		switched: core.GetTime(),
	}
}

// Poll switches channel once the dwell has elapsed. Main loop only.
func (m *channelMux) Poll(now uint32) {
	if now-m.switched < m.dwell {
		return
	}
	m.current = (m.current + 1) % len(m.channels)
	m.adc.SwitchChannel(m.channels[m.current])
	m.switched = now
}
