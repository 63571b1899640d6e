package commands

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/easwire/aswbxml-go/pkg/log"
)

func readEvents(t *testing.T, path string) []log.Event {
	t.Helper()
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	var events []log.Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		events = append(events, event)
	}
	return events
}

func TestFilterByTraceID(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, TraceID: "trace-1", Category: log.CategoryDocument},
		{Timestamp: ts, TraceID: "trace-2", Category: log.CategoryDocument},
		{Timestamp: ts, TraceID: "trace-1", Category: log.CategoryWarning},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.wlog")

	var buf bytes.Buffer
	err := RunFilter(path, FilterOptions{Output: outPath, TraceID: "trace-1"}, &buf)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	got := readEvents(t, outPath)
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	for _, e := range got {
		if e.TraceID != "trace-1" {
			t.Errorf("expected trace-1, got %s", e.TraceID)
		}
	}
	if !strings.Contains(buf.String(), "Filtered 2 events") {
		t.Errorf("unexpected summary: %q", buf.String())
	}
}

func TestFilterByTimeRange(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: base, TraceID: "trace-1"},
		{Timestamp: base.Add(time.Hour), TraceID: "trace-2"},
		{Timestamp: base.Add(2 * time.Hour), TraceID: "trace-3"},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.wlog")

	err := RunFilter(path, FilterOptions{
		Output:    outPath,
		TimeStart: base.Add(30 * time.Minute).Format(time.RFC3339),
		TimeEnd:   base.Add(90 * time.Minute).Format(time.RFC3339),
	}, io.Discard)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	// Only the 11:00 event is inside the window
	got := readEvents(t, outPath)
	if len(got) != 1 || got[0].TraceID != "trace-2" {
		t.Errorf("expected only trace-2, got %+v", got)
	}
}

func TestFilterByDirectionAndCategory(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, Direction: log.DirectionDecode, Category: log.CategoryError},
		{Timestamp: ts, Direction: log.DirectionEncode, Category: log.CategoryError},
		{Timestamp: ts, Direction: log.DirectionEncode, Category: log.CategoryDocument},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.wlog")

	err := RunFilter(path, FilterOptions{
		Output:    outPath,
		Direction: "ENCODE",
		Category:  "error",
	}, io.Discard)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	got := readEvents(t, outPath)
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Direction != log.DirectionEncode || got[0].Category != log.CategoryError {
		t.Errorf("unexpected event: %+v", got[0])
	}
}

func TestFilterBySource(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, Source: "a.wbxml"},
		{Timestamp: ts, Source: "b.wbxml"},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.wlog")

	if err := RunFilter(path, FilterOptions{Output: outPath, Source: "b.wbxml"}, io.Discard); err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	got := readEvents(t, outPath)
	if len(got) != 1 || got[0].Source != "b.wbxml" {
		t.Errorf("expected only b.wbxml, got %+v", got)
	}
}

func TestFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, nil)

	tests := []struct {
		name string
		opts FilterOptions
	}{
		{"bad time-start", FilterOptions{TimeStart: "yesterday"}},
		{"bad time-end", FilterOptions{TimeEnd: "2026-13-01"}},
		{"bad direction", FilterOptions{Direction: "in"}},
		{"bad category", FilterOptions{Category: "message"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Output = filepath.Join(t.TempDir(), "out.wlog")
			if err := RunFilter(path, tt.opts, io.Discard); err == nil {
				t.Error("expected error")
			}
		})
	}
}
