//go:build tinygo

package core

import "runtime/interrupt"

type irqState = interrupt.State

// disableInterrupts disables interrupts and returns the previous state
func disableInterrupts() irqState {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state irqState) {
	interrupt.Restore(state)
}

// guard serializes the sample and tick contexts. On the MCU the sample
// context is the ADC interrupt, so masking interrupts is enough and nesting
// (e.g. from inside TimerDispatch) is safe.
type guard struct{}

func (g *guard) enter() irqState {
	return interrupt.Disable()
}

func (g *guard) exit(state irqState) {
	interrupt.Restore(state)
}
