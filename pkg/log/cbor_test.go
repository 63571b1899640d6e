package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

func TestEventCBORRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	original := Event{
		Timestamp: ts,
		TraceID:   "6b0f4e3a-2c1d-4e5f-8a9b-0c1d2e3f4a5b",
		Direction: DirectionEncode,
		Category:  CategoryDocument,
		Source:    "sync-request.xml",
		Document: &DocumentEvent{
			Size:     42,
			Root:     "Sync",
			Elements: 7,
			MaxDepth: 4,
			Pages:    []uint8{0, 17},
			Data:     []byte{0x03, 0x01, 0x6A, 0x00},
			Duration: 1500 * time.Microsecond,
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, original.Timestamp)
	}
	if decoded.TraceID != original.TraceID {
		t.Errorf("TraceID: got %q, want %q", decoded.TraceID, original.TraceID)
	}
	if decoded.Direction != original.Direction {
		t.Errorf("Direction: got %v, want %v", decoded.Direction, original.Direction)
	}
	if decoded.Source != original.Source {
		t.Errorf("Source: got %q, want %q", decoded.Source, original.Source)
	}
	if decoded.Document == nil {
		t.Fatal("Document is nil")
	}
	d := decoded.Document
	if d.Size != 42 || d.Root != "Sync" || d.Elements != 7 || d.MaxDepth != 4 {
		t.Errorf("Document: got %+v", d)
	}
	if !bytes.Equal(d.Pages, []byte{0, 17}) {
		t.Errorf("Pages: got %v, want [0 17]", d.Pages)
	}
	if !bytes.Equal(d.Data, original.Document.Data) {
		t.Errorf("Data: got %x, want %x", d.Data, original.Document.Data)
	}
	if d.Duration != original.Document.Duration {
		t.Errorf("Duration: got %v, want %v", d.Duration, original.Document.Duration)
	}
}

func TestEventCBORRoundTripError(t *testing.T) {
	offset := 9
	data, err := EncodeEvent(Event{
		Timestamp: time.Now(),
		TraceID:   "t-1",
		Category:  CategoryError,
		Error: &ErrorEventData{
			Kind:    "UnbalancedEnd",
			Message: "offset 9: unbalanced END",
			Offset:  &offset,
		},
	})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if decoded.Error == nil {
		t.Fatal("Error is nil")
	}
	if decoded.Error.Kind != "UnbalancedEnd" {
		t.Errorf("Kind: got %q", decoded.Error.Kind)
	}
	if decoded.Error.Offset == nil || *decoded.Error.Offset != 9 {
		t.Errorf("Offset: got %v, want 9", decoded.Error.Offset)
	}
	if decoded.Document != nil || decoded.Warning != nil {
		t.Error("unexpected payloads set")
	}
}

func TestEventCBORUsesIntegerKeys(t *testing.T) {
	data, err := EncodeEvent(Event{TraceID: "abc"})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	if bytes.Contains(data, []byte("TraceID")) {
		t.Error("encoded event contains field name; want integer keys")
	}
}

func TestEventTimestampIsTagged(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 1, time.UTC)
	data, err := EncodeEvent(Event{Timestamp: ts})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	var fields map[int]cbor.RawMessage
	if err := cbor.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	raw := fields[1]
	if len(raw) == 0 || raw[0] != 0xC0 {
		t.Fatalf("timestamp = % X, want tag 0 (C0) prefix", raw)
	}
}

func TestDecodeEventAcceptsUntaggedTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	data, err := cbor.Marshal(map[int]string{1: ts.Format(time.RFC3339Nano)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	event, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if !event.Timestamp.Equal(ts) {
		t.Errorf("Timestamp: got %v, want %v", event.Timestamp, ts)
	}
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xFF, 0x00}); err == nil {
		t.Error("expected error for invalid CBOR")
	}
}
