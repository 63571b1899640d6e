package log

// Logger receives codec events.
type Logger interface {
	// Log records an event. Implementations must be safe for concurrent
	// use; decoders on different goroutines may share one Logger.
	Log(event Event)
}

// NoopLogger discards all events. It is usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
