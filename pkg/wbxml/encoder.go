package wbxml

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/easwire/aswbxml-go/pkg/codepage"
	"github.com/easwire/aswbxml-go/pkg/log"
)

// encodeState is the per-call encoder state.
type encodeState struct {
	w     *writer
	table *codepage.Table
	scope *nsScope
	page  int
}

// Encode serializes doc as WBXML 1.3 with the header 03 01 6A 00. A nil
// opts is the same as the zero EncodeOptions; a nil doc encodes as a bare
// header.
//
// Element pages are taken from the element's prefix and the namespace
// declarations in scope when present, otherwise from Element.Page.
// SWITCH_PAGE is emitted only when the page changes.
func Encode(doc *Document, opts *EncodeOptions) ([]byte, error) {
	if opts == nil {
		opts = &EncodeOptions{}
	}
	trace := newTracer(opts.Logger, opts.TraceID, opts.Source, log.DirectionEncode)

	out, err := encode(doc, opts.table())
	if err != nil {
		trace.fail(err)
		return nil, err
	}
	trace.document(out, doc)
	return out, nil
}

// EncodeTo encodes doc and writes it to w. Nothing is written if encoding
// fails.
func EncodeTo(w io.Writer, doc *Document, opts *EncodeOptions) error {
	out, err := Encode(doc, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func encode(doc *Document, table *codepage.Table) ([]byte, error) {
	e := &encodeState{
		w:     newWriter(256),
		table: table,
		scope: newNSScope(table),
	}
	e.w.writeHeader()
	if doc == nil {
		return e.w.Bytes(), nil
	}
	for _, n := range doc.Children {
		if err := e.node(n); err != nil {
			return nil, err
		}
	}
	return e.w.Bytes(), nil
}

func (e *encodeState) node(n Node) error {
	switch v := n.(type) {
	case *Element:
		if v == nil {
			return fmt.Errorf("%w: nil element", ErrUnencodableTag)
		}
		return e.element(v)

	case Text:
		s := string(v)
		if i := strings.IndexByte(s, 0x00); i >= 0 {
			return fmt.Errorf("%w: NUL at position %d of %q", ErrInvalidTextContent, i, truncate(s, 32))
		}
		e.w.writeByte(StrI)
		e.w.writeTermString(s)
		return nil

	case Opaque:
		if uint64(len(v)) > math.MaxUint32 {
			return fmt.Errorf("%w: opaque payload of %d bytes", ErrInputTooLarge, len(v))
		}
		e.w.writeByte(OpaqueData)
		e.w.writeVarUint(uint32(len(v)))
		e.w.write(v)
		return nil

	default:
		return fmt.Errorf("%w: unexpected node %T", ErrUnencodableTag, n)
	}
}

func (e *encodeState) element(el *Element) error {
	if err := e.scope.push(el); err != nil {
		return err
	}
	defer e.scope.pop()

	page, err := e.scope.pageOf(el)
	if err != nil {
		return err
	}
	if page != e.page {
		e.w.writeByte(SwitchPage)
		e.w.writeByte(byte(page))
		e.page = page
	}

	token, ok := e.table.TokenFor(page, el.Name)
	if !ok {
		if token, ok = ParsePlaceholder(el.Name); !ok {
			return fmt.Errorf("%w: <%s> on page %d (%s)", ErrUnencodableTag, el.Name, page, e.pageName(page))
		}
	}

	content := len(el.Children) > 0
	e.w.writeByte(byte(NewTag(token, content)))
	if !content {
		return nil
	}
	for _, c := range el.Children {
		if err := e.node(c); err != nil {
			return err
		}
	}
	e.w.writeByte(End)
	return nil
}

func (e *encodeState) pageName(page int) string {
	if p, ok := e.table.Page(page); ok {
		return p.Name
	}
	return "?"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
