package wbxml

import (
	"io"
)

// Message pairs a tree with its WBXML encoding. It is the entry point for
// callers that hold either form and want the other.
//
// A Message built from bytes keeps the original input; Bytes returns it
// unchanged and Reencode produces the codec's own encoding of the tree.
type Message struct {
	doc  *Document
	data []byte
}

// NewMessageFromBytes decodes data.
func NewMessageFromBytes(data []byte, opts *DecodeOptions) (*Message, error) {
	doc, err := Decode(data, opts)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Message{doc: doc, data: buf}, nil
}

// NewMessageFromDocument encodes doc.
func NewMessageFromDocument(doc *Document, opts *EncodeOptions) (*Message, error) {
	data, err := Encode(doc, opts)
	if err != nil {
		return nil, err
	}
	return &Message{doc: doc, data: data}, nil
}

// NewMessageFromXML parses XML from r and encodes it. The table in opts, if
// any, is used for both steps.
func NewMessageFromXML(r io.Reader, opts *EncodeOptions) (*Message, error) {
	if opts == nil {
		opts = &EncodeOptions{}
	}
	doc, err := ParseXML(r, opts.table())
	if err != nil {
		return nil, err
	}
	return NewMessageFromDocument(doc, opts)
}

// Document returns the tree. Callers may modify it; Reencode reflects the
// changes, Bytes does not.
func (m *Message) Document() *Document {
	return m.doc
}

// Bytes returns the WBXML the message was built from or encoded to.
func (m *Message) Bytes() []byte {
	return m.data
}

// Reencode encodes the current tree.
func (m *Message) Reencode(opts *EncodeOptions) ([]byte, error) {
	return Encode(m.doc, opts)
}

// WriteXML renders the tree as XML.
func (m *Message) WriteXML(w io.Writer, opts *XMLOptions) error {
	return WriteXML(w, m.doc, opts)
}

// String returns the tree as indented XML, or the rendering error.
func (m *Message) String() string {
	s, err := FormatXML(m.doc, &XMLOptions{Indent: "  "})
	if err != nil {
		return "<!-- " + err.Error() + " -->"
	}
	return s
}
