//go:build !tinygo

package core

import "sync"

// irqState is a placeholder for interrupt state on regular Go
type irqState uintptr

// disableInterrupts is a no-op on regular Go (for testing)
func disableInterrupts() irqState {
	return 0
}

// restoreInterrupts is a no-op on regular Go (for testing)
func restoreInterrupts(state irqState) {}

// guard serializes the sample and tick contexts. Host builds run them on
// separate goroutines, so a mutex is required. A guard must not be entered
// twice by the same caller.
type guard struct {
	mu sync.Mutex
}

func (g *guard) enter() irqState {
	g.mu.Lock()
	return 0
}

func (g *guard) exit(irqState) {
	g.mu.Unlock()
}
