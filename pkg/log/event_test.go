package log

import (
	"bytes"
	"testing"
)

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{DirectionDecode, "DECODE"},
		{DirectionEncode, "ENCODE"},
		{Direction(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		c    Category
		want string
	}{
		{CategoryDocument, "DOCUMENT"},
		{CategoryWarning, "WARNING"},
		{CategoryError, "ERROR"},
		{Category(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestCaptureData(t *testing.T) {
	small := []byte{1, 2, 3}
	got, truncated := CaptureData(small)
	if truncated {
		t.Error("small input reported as truncated")
	}
	if !bytes.Equal(got, small) {
		t.Errorf("got %v, want %v", got, small)
	}
	got[0] = 9
	if small[0] != 1 {
		t.Error("CaptureData aliases its input")
	}

	large := make([]byte, MaxLogDataSize+10)
	got, truncated = CaptureData(large)
	if !truncated {
		t.Error("large input not reported as truncated")
	}
	if len(got) != MaxLogDataSize {
		t.Errorf("len = %d, want %d", len(got), MaxLogDataSize)
	}
}
