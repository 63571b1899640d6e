package log

import (
	"time"
)

// MaxLogDataSize is the maximum number of WBXML bytes copied into a
// DocumentEvent. Larger documents are truncated in the log.
const MaxLogDataSize = 4096

// Event is one codec event. CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// TraceID correlates the events of one decode or encode call.
	TraceID string `cbor:"2,keyasint"`

	// Direction tells whether the codec was decoding or encoding.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Source is a caller-supplied label such as a file name.
	Source string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Document *DocumentEvent  `cbor:"10,keyasint,omitempty"`
	Warning  *WarningEvent   `cbor:"11,keyasint,omitempty"`
	Error    *ErrorEventData `cbor:"12,keyasint,omitempty"`
}

// Direction indicates which way the codec was converting.
type Direction uint8

const (
	// DirectionDecode is WBXML bytes to tree.
	DirectionDecode Direction = 0
	// DirectionEncode is tree to WBXML bytes.
	DirectionEncode Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionDecode:
		return "DECODE"
	case DirectionEncode:
		return "ENCODE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryDocument indicates a completed call.
	CategoryDocument Category = 0
	// CategoryWarning indicates a tolerated irregularity.
	CategoryWarning Category = 1
	// CategoryError indicates a failed call.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryDocument:
		return "DOCUMENT"
	case CategoryWarning:
		return "WARNING"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// DocumentEvent describes a successfully decoded or encoded document.
type DocumentEvent struct {
	// Size is the WBXML size in bytes.
	Size int `cbor:"1,keyasint"`

	// Root is the name of the first top-level element.
	Root string `cbor:"2,keyasint,omitempty"`

	// Elements is the number of elements in the tree.
	Elements int `cbor:"3,keyasint"`

	// MaxDepth is the deepest nesting level (1 for a lone root).
	MaxDepth int `cbor:"4,keyasint"`

	// Pages lists the code pages used in order of first appearance.
	Pages []uint8 `cbor:"5,keyasint,omitempty"`

	// Data is the WBXML bytes (may be truncated for large documents).
	Data []byte `cbor:"6,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"7,keyasint,omitempty"`

	// Duration is how long the call took.
	Duration time.Duration `cbor:"8,keyasint,omitempty"`
}

// WarningEvent describes a placeholder substituted for an unassigned token.
type WarningEvent struct {
	// Offset is the input offset of the tag byte.
	Offset int `cbor:"1,keyasint"`

	// Page is the active code page.
	Page uint8 `cbor:"2,keyasint"`

	// Token is the unassigned token.
	Token uint8 `cbor:"3,keyasint"`

	// Placeholder is the tag name that was used instead.
	Placeholder string `cbor:"4,keyasint"`
}

// ErrorEventData describes a failed call.
type ErrorEventData struct {
	// Kind is the short error kind, e.g. "UnbalancedEnd".
	Kind string `cbor:"1,keyasint"`

	// Message is the full error message.
	Message string `cbor:"2,keyasint"`

	// Offset is the input offset where decoding stopped (decode only).
	Offset *int `cbor:"3,keyasint,omitempty"`
}

// CaptureData returns data truncated to MaxLogDataSize, copying it so the
// event does not alias caller memory.
func CaptureData(data []byte) ([]byte, bool) {
	truncated := len(data) > MaxLogDataSize
	if truncated {
		data = data[:MaxLogDataSize]
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, truncated
}
