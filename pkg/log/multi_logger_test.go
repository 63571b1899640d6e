package log

import (
	"testing"
	"time"
)

// recordingLogger records events for testing.
type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(event Event) {
	r.events = append(r.events, event)
}

func TestMultiLoggerCallsAll(t *testing.T) {
	r1 := &recordingLogger{}
	r2 := &recordingLogger{}
	r3 := &recordingLogger{}

	multi := NewMultiLogger(r1, r2, r3)
	multi.Log(Event{
		Timestamp: time.Now(),
		TraceID:   "trace-123",
		Direction: DirectionDecode,
		Category:  CategoryDocument,
	})

	for i, r := range []*recordingLogger{r1, r2, r3} {
		if len(r.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(r.events))
			continue
		}
		if r.events[0].TraceID != "trace-123" {
			t.Errorf("logger %d: TraceID = %q", i, r.events[0].TraceID)
		}
	}
}

func TestMultiLoggerSkipsNil(t *testing.T) {
	r := &recordingLogger{}
	multi := NewMultiLogger(nil, r, nil)
	multi.Log(Event{TraceID: "x"})
	if len(r.events) != 1 {
		t.Errorf("got %d events, want 1", len(r.events))
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	NewMultiLogger().Log(Event{})
}
