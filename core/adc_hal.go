package core

// ADCChannelID identifies a logical ADC input channel. On the RP2040 the
// external inputs are channels 0-3 (GPIO26-GPIO29).
type ADCChannelID uint8

// ADCValue is a raw conversion result, right-aligned (0..ADCFullScale).
type ADCValue uint16

// ADCDriver is the abstract ADC interface that core code uses.
type ADCDriver interface {
	// ConfigureChannel prepares a channel for analog input.
	// For pin-muxed channels, this should set pin to analog mode.
	ConfigureChannel(ch ADCChannelID) error

	// ReadRaw performs a blocking one-shot sample from the given channel.
	// Only used outside steady state (calibration).
	ReadRaw(ch ADCChannelID) (ADCValue, error)
}
