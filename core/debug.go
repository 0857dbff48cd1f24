package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled gates DebugPrintln; event lines are always written
	debugEnabled = true
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables DebugPrintln output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer.
// Blocking; never call from the sample or tick path, use an EventLog there.
func DebugPrintln(msg string) {
	if debugEnabled {
		debugPrintln(msg)
	}
}

var eventLine = make([]byte, 0, 96)

// PrintEvents drains l into the debug writer, one line per event. Event
// lines ignore SetDebugEnabled. Call from the main loop only.
func PrintEvents(l *EventLog) int {
	return l.Drain(func(e Event) {
		eventLine = AppendEvent(eventLine[:0], e)
		debugPrintln(string(eventLine))
	})
}
