package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, path string, filter Filter) []Event {
	t.Helper()
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var out []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		out = append(out, event)
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	now := time.Now()
	path := createTestLogFile(t, []Event{
		{Timestamp: now, TraceID: "t-1", Direction: DirectionDecode, Category: CategoryDocument},
		{Timestamp: now, TraceID: "t-2", Direction: DirectionEncode, Category: CategoryDocument},
		{Timestamp: now, TraceID: "t-3", Direction: DirectionDecode, Category: CategoryError},
	})

	read := readAll(t, path, Filter{})
	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].TraceID != "t-1" {
		t.Errorf("first event TraceID = %q, want %q", read[0].TraceID, "t-1")
	}
	if read[2].TraceID != "t-3" {
		t.Errorf("last event TraceID = %q, want %q", read[2].TraceID, "t-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next on empty file = %v, want io.EOF", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.wlog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, []Event{
		{Timestamp: base, TraceID: "a", Source: "one.wbxml", Direction: DirectionDecode, Category: CategoryDocument},
		{Timestamp: base.Add(time.Second), TraceID: "a", Source: "one.wbxml", Direction: DirectionDecode, Category: CategoryWarning},
		{Timestamp: base.Add(2 * time.Second), TraceID: "b", Source: "two.xml", Direction: DirectionEncode, Category: CategoryDocument},
		{Timestamp: base.Add(3 * time.Second), TraceID: "c", Source: "two.xml", Direction: DirectionEncode, Category: CategoryError},
	})

	encode := DirectionEncode
	warning := CategoryWarning
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"a", "a", "b", "c"}},
		{"trace", Filter{TraceID: "a"}, []string{"a", "a"}},
		{"source", Filter{Source: "two.xml"}, []string{"b", "c"}},
		{"direction", Filter{Direction: &encode}, []string{"b", "c"}},
		{"category", Filter{Category: &warning}, []string{"a"}},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, []string{"a", "b"}},
		{"no match", Filter{TraceID: "zzz"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, e := range readAll(t, path, tt.filter) {
				got = append(got, e.TraceID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
