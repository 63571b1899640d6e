package wbxml

import (
	"fmt"

	"github.com/easwire/aswbxml-go/pkg/codepage"
	"github.com/easwire/aswbxml-go/pkg/log"
)

// decodeState is the per-call decoder state. It is discarded when Decode
// returns.
type decodeState struct {
	cur   *Cursor
	table *codepage.Table
	opts  *DecodeOptions
	trace *tracer

	page  int
	doc   *Document
	stack []*Element
}

// Decode parses a WBXML document. A nil opts is the same as the zero
// DecodeOptions.
//
// Every failure aborts the call and returns no tree. Errors wrap one of the
// package sentinels inside an *OffsetError giving the position of the
// offending token.
func Decode(data []byte, opts *DecodeOptions) (*Document, error) {
	if opts == nil {
		opts = &DecodeOptions{}
	}
	d := &decodeState{
		cur:   NewCursor(data),
		table: opts.table(),
		opts:  opts,
		trace: newTracer(opts.Logger, opts.TraceID, opts.Source, log.DirectionDecode),
		page:  opts.InitialPage,
		doc:   &Document{},
	}

	doc, err := d.run()
	if err != nil {
		d.trace.fail(err)
		return nil, err
	}
	d.trace.document(data, doc)
	return doc, nil
}

func (d *decodeState) run() (*Document, error) {
	if d.opts.MaxSize > 0 && d.cur.Remaining() > d.opts.MaxSize {
		return nil, &OffsetError{
			Offset: 0,
			Err:    fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, d.cur.Remaining(), d.opts.MaxSize),
		}
	}
	if d.page < 0 || d.page >= d.table.Len() {
		return nil, &OffsetError{Offset: 0, Err: fmt.Errorf("%w: initial page %d", ErrInvalidCodePage, d.page)}
	}
	if err := d.header(); err != nil {
		return nil, err
	}
	for d.cur.Remaining() > 0 {
		start := d.cur.Offset()
		if err := d.token(); err != nil {
			return nil, &OffsetError{Offset: start, Err: err}
		}
	}
	if len(d.stack) > 0 {
		open := d.stack[len(d.stack)-1]
		return nil, &OffsetError{
			Offset: d.cur.Offset(),
			Err:    fmt.Errorf("%w: input ended with %d open element(s), innermost <%s>", ErrUnbalancedEnd, len(d.stack), open.Name),
		}
	}
	if d.opts.Prefixes {
		d.declarePages()
	}
	return d.doc, nil
}

// header validates the four header fields. Version and public identifier
// are read and ignored.
func (d *decodeState) header() error {
	fail := func(off int, err error) error {
		return &OffsetError{Offset: off, Err: err}
	}

	if _, err := d.cur.ReadByte(); err != nil {
		return fail(0, fmt.Errorf("%w: version", err))
	}
	off := d.cur.Offset()
	if _, err := d.cur.ReadVarUint(); err != nil {
		return fail(off, fmt.Errorf("public identifier: %w", err))
	}

	off = d.cur.Offset()
	charset, err := d.cur.ReadVarUint()
	if err != nil {
		return fail(off, fmt.Errorf("charset: %w", err))
	}
	if charset != CharsetUTF8 {
		return fail(off, fmt.Errorf("%w: MIBenum %d", ErrUnsupportedCharset, charset))
	}

	off = d.cur.Offset()
	strtbl, err := d.cur.ReadVarUint()
	if err != nil {
		return fail(off, fmt.Errorf("string table length: %w", err))
	}
	if strtbl != 0 {
		return fail(off, fmt.Errorf("%w: length %d", ErrStringTableNotSupported, strtbl))
	}
	return nil
}

// token consumes one body token and its payload.
func (d *decodeState) token() error {
	b, err := d.cur.ReadByte()
	if err != nil {
		return err
	}

	switch {
	case b == SwitchPage:
		p, err := d.cur.ReadByte()
		if err != nil {
			return fmt.Errorf("%w: SWITCH_PAGE operand", err)
		}
		if int(p) >= d.table.Len() {
			return fmt.Errorf("%w: %d", ErrInvalidCodePage, p)
		}
		d.page = int(p)
		return nil

	case b == End:
		return d.end()

	case b == StrI:
		s, err := d.cur.ReadTermString()
		if err != nil {
			return err
		}
		d.add(Text(s))
		return nil

	case b == OpaqueData:
		n, err := d.cur.ReadVarUint()
		if err != nil {
			return fmt.Errorf("opaque length: %w", err)
		}
		if int64(n) > int64(d.cur.Remaining()) {
			return fmt.Errorf("%w: opaque length %d, %d bytes left", ErrTruncatedInput, n, d.cur.Remaining())
		}
		p, err := d.cur.ReadFixed(int(n))
		if err != nil {
			return err
		}
		d.add(Opaque(p))
		return nil

	case isUnsupportedGlobal(b):
		return fmt.Errorf("%w: %s (0x%02X)", ErrUnsupportedFeature, GlobalTokenName(b), b)
	}

	return d.tag(Tag(b))
}

func (d *decodeState) end() error {
	if n := len(d.stack); n > 0 {
		d.stack = d.stack[:n-1]
		return nil
	}
	// A surplus END as the very last byte, after the document has been
	// closed, is tolerated unless StrictEnd is set.
	if !d.opts.StrictEnd && d.cur.Remaining() == 0 && d.doc.Root() != nil {
		return nil
	}
	return fmt.Errorf("%w: END with no open element", ErrUnbalancedEnd)
}

func (d *decodeState) tag(t Tag) error {
	if t.HasAttributes() {
		return fmt.Errorf("%w: tag %s", ErrAttributesNotSupported, t)
	}
	token := t.Token()
	name, ok := d.table.TagFor(d.page, token)
	if !ok {
		name = PlaceholderName(token)
		d.trace.placeholder(d.cur.Offset()-1, d.page, token, name)
	}

	el := &Element{Name: name, Page: d.page}
	if d.opts.Prefixes {
		if p, ok := d.table.Page(d.page); ok {
			el.Prefix = p.Prefix
		}
	}
	if d.opts.References {
		el.Reference, _ = d.table.ReferenceFor(d.page, token)
	}

	d.add(el)
	if t.HasContent() {
		d.stack = append(d.stack, el)
	}
	return nil
}

// add appends n to the innermost open element, or to the document.
func (d *decodeState) add(n Node) {
	if k := len(d.stack); k > 0 {
		top := d.stack[k-1]
		top.Children = append(top.Children, n)
		return
	}
	d.doc.Children = append(d.doc.Children, n)
}

// declarePages binds the prefix of every page used in the document on the
// first top-level element, so the prefixed tree re-encodes unchanged.
func (d *decodeState) declarePages() {
	root := d.doc.Root()
	if root == nil {
		return
	}
	for _, idx := range ComputeStats(d.doc).Pages {
		p, ok := d.table.Page(idx)
		if !ok {
			continue
		}
		root.Namespaces = append(root.Namespaces, Namespace{Prefix: p.Prefix, URI: p.Namespace})
	}
}
