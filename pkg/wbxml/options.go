package wbxml

import (
	"github.com/easwire/aswbxml-go/pkg/codepage"
	"github.com/easwire/aswbxml-go/pkg/log"
)

// DecodeOptions configures Decode. The zero value decodes with the
// embedded code page table and no diagnostics.
type DecodeOptions struct {
	// Table overrides the code page table. Nil means codepage.Default().
	Table *codepage.Table

	// InitialPage is the code page active before the first SWITCH_PAGE.
	InitialPage int

	// Prefixes sets each element's Prefix to its page prefix and declares
	// every page used on the first top-level element.
	Prefixes bool

	// References attaches each tag's documentation link to
	// Element.Reference.
	References bool

	// StrictEnd rejects a surplus END byte at the very end of the input.
	// By default one trailing END after the document has closed is ignored,
	// as some encoders emit it.
	StrictEnd bool

	// MaxSize rejects inputs longer than this many bytes. Zero means no
	// limit.
	MaxSize int

	// Logger receives codec events. Nil disables event logging.
	Logger log.Logger

	// TraceID correlates the events of one call. If empty and Logger is
	// set, a random ID is generated.
	TraceID string

	// Source labels the events, e.g. a file name or request path.
	Source string
}

func (o *DecodeOptions) table() *codepage.Table {
	if o.Table != nil {
		return o.Table
	}
	return codepage.Default()
}

// EncodeOptions configures Encode. The zero value encodes with the embedded
// code page table.
type EncodeOptions struct {
	// Table overrides the code page table. Nil means codepage.Default().
	Table *codepage.Table

	// Logger receives codec events. Nil disables event logging.
	Logger log.Logger

	// TraceID correlates the events of one call.
	TraceID string

	// Source labels the events.
	Source string
}

func (o *EncodeOptions) table() *codepage.Table {
	if o.Table != nil {
		return o.Table
	}
	return codepage.Default()
}
