package wbxml

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/easwire/aswbxml-go/pkg/codepage"
)

// opaqueTarget is the processing-instruction target that carries Opaque
// payloads in XML form: <?opaque BASE64?>.
const opaqueTarget = "opaque"

// XMLOptions configures the XML rendering of a tree.
type XMLOptions struct {
	// Indent is the per-level indentation. Empty renders everything on one
	// line.
	Indent string

	// Declaration writes an <?xml ...?> declaration first.
	Declaration bool

	// References writes each element's documentation link as a comment
	// before the element. Elements without Reference get the table's link.
	References bool

	// Table overrides the code page table. Nil means codepage.Default().
	Table *codepage.Table
}

func (o *XMLOptions) table() *codepage.Table {
	if o.Table != nil {
		return o.Table
	}
	return codepage.Default()
}

// WriteXML renders doc as namespaced XML. Elements without a prefix are
// placed in their page's namespace through default xmlns declarations, so
// the output parses back with ParseXML into the same pages. Opaque leaves
// are written as <?opaque BASE64?> processing instructions.
func WriteXML(w io.Writer, doc *Document, opts *XMLOptions) error {
	if opts == nil {
		opts = &XMLOptions{}
	}
	x := &xmlWriter{
		opts:  opts,
		table: opts.table(),
	}
	x.scope = newNSScope(x.table)
	if opts.Declaration {
		x.buf.WriteString(xml.Header)
	}
	if doc != nil {
		for i, n := range doc.Children {
			if i > 0 && opts.Indent != "" {
				x.buf.WriteByte('\n')
			}
			if err := x.node(n, 0); err != nil {
				return err
			}
		}
	}
	if opts.Indent != "" || opts.Declaration {
		x.buf.WriteByte('\n')
	}
	_, err := w.Write(x.buf.Bytes())
	return err
}

// FormatXML returns WriteXML's output as a string.
func FormatXML(doc *Document, opts *XMLOptions) (string, error) {
	var sb strings.Builder
	if err := WriteXML(&sb, doc, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type xmlWriter struct {
	opts  *XMLOptions
	table *codepage.Table
	buf   bytes.Buffer

	// scope follows the tree's own declarations, to resolve pages the way
	// the encoder does. rendered follows what has actually been written.
	scope    *nsScope
	rendered []map[string]string
}

func (x *xmlWriter) boundURI(prefix string) (string, bool) {
	for i := len(x.rendered) - 1; i >= 0; i-- {
		if uri, ok := x.rendered[i][prefix]; ok {
			return uri, true
		}
	}
	return "", false
}

func (x *xmlWriter) newline(depth int) {
	if x.opts.Indent == "" {
		return
	}
	x.buf.WriteByte('\n')
	x.buf.WriteString(strings.Repeat(x.opts.Indent, depth))
}

func (x *xmlWriter) node(n Node, depth int) error {
	switch v := n.(type) {
	case *Element:
		if v == nil {
			return fmt.Errorf("%w: nil element", ErrUnencodableTag)
		}
		return x.element(v, depth)
	case Text:
		return xml.EscapeText(&x.buf, []byte(v))
	case Opaque:
		x.buf.WriteString("<?" + opaqueTarget + " ")
		x.buf.WriteString(base64.StdEncoding.EncodeToString(v))
		x.buf.WriteString("?>")
		return nil
	default:
		return fmt.Errorf("%w: unexpected node %T", ErrUnencodableTag, n)
	}
}

func (x *xmlWriter) element(el *Element, depth int) error {
	if err := x.scope.push(el); err != nil {
		return err
	}
	defer x.scope.pop()
	page, err := x.scope.pageOf(el)
	if err != nil {
		return err
	}
	cp, ok := x.table.Page(page)
	if !ok {
		return fmt.Errorf("%w: %d on <%s>", ErrInvalidCodePage, page, el.Name)
	}

	decls := make(map[string]string, len(el.Namespaces)+1)
	attrs := make([]Namespace, 0, len(el.Namespaces)+1)
	for _, ns := range el.Namespaces {
		if _, dup := decls[ns.Prefix]; dup {
			continue
		}
		decls[ns.Prefix] = ns.URI
		attrs = append(attrs, ns)
	}
	x.rendered = append(x.rendered, decls)
	defer func() { x.rendered = x.rendered[:len(x.rendered)-1] }()

	if uri, ok := x.boundURI(el.Prefix); !ok || uri != cp.Namespace {
		ns := Namespace{Prefix: el.Prefix, URI: cp.Namespace}
		if _, own := decls[el.Prefix]; own {
			for i := range attrs {
				if attrs[i].Prefix == el.Prefix {
					attrs[i] = ns
				}
			}
		} else {
			attrs = append(attrs, ns)
		}
		decls[el.Prefix] = cp.Namespace
	}

	if x.opts.References {
		ref := el.Reference
		if ref == "" {
			if tok, ok := x.table.TokenFor(page, el.Name); ok {
				ref, _ = x.table.ReferenceFor(page, tok)
			}
		}
		if ref != "" {
			x.buf.WriteString("<!-- ")
			x.buf.WriteString(strings.ReplaceAll(ref, "--", "%2D%2D"))
			x.buf.WriteString(" -->")
			x.newline(depth)
		}
	}

	name := el.Name
	if el.Prefix != "" {
		name = el.Prefix + ":" + el.Name
	}
	x.buf.WriteByte('<')
	x.buf.WriteString(name)
	for _, ns := range attrs {
		x.buf.WriteString(" xmlns")
		if ns.Prefix != "" {
			x.buf.WriteByte(':')
			x.buf.WriteString(ns.Prefix)
		}
		x.buf.WriteString(`="`)
		if err := xml.EscapeText(&x.buf, []byte(ns.URI)); err != nil {
			return err
		}
		x.buf.WriteByte('"')
	}
	if len(el.Children) == 0 {
		x.buf.WriteString("/>")
		return nil
	}
	x.buf.WriteByte('>')

	// Leaf-only and mixed content stay on one line; indenting around text
	// would change it.
	block := hasElementChild(el) && !hasTextChild(el)
	for _, c := range el.Children {
		if block {
			x.newline(depth + 1)
		}
		if err := x.node(c, depth+1); err != nil {
			return err
		}
	}
	if block {
		x.newline(depth)
	}
	x.buf.WriteString("</")
	x.buf.WriteString(name)
	x.buf.WriteByte('>')
	return nil
}

func hasElementChild(el *Element) bool {
	for _, c := range el.Children {
		if _, ok := c.(*Element); ok {
			return true
		}
	}
	return false
}

func hasTextChild(el *Element) bool {
	for _, c := range el.Children {
		if _, ok := c.(Text); ok {
			return true
		}
	}
	return false
}

// ParseXML reads an attribute-free XML document into a tree and resolves
// every element's page from its namespace. Namespace declarations and
// prefixes are kept on the elements. Whitespace-only text is dropped,
// adjacent text is merged, and comments and directives are ignored. An
// <?opaque BASE64?> instruction becomes an Opaque leaf. Elements with no
// namespace in scope fall back to page 0 (AirSync). A nil table means
// codepage.Default().
func ParseXML(r io.Reader, table *codepage.Table) (*Document, error) {
	if table == nil {
		table = codepage.Default()
	}
	dec := xml.NewDecoder(r)
	dec.Strict = true

	doc := &Document{}
	var stack []*Element
	add := func(n Node) {
		if k := len(stack); k > 0 {
			stack[k-1].Children = append(stack[k-1].Children, n)
			return
		}
		doc.Children = append(doc.Children, n)
	}

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Prefix: t.Name.Space}
			for _, a := range t.Attr {
				switch {
				case a.Name.Space == "xmlns":
					el.Namespaces = append(el.Namespaces, Namespace{Prefix: a.Name.Local, URI: a.Value})
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					el.Namespaces = append(el.Namespaces, Namespace{URI: a.Value})
				default:
					return nil, fmt.Errorf("%w: <%s> has attribute %q", ErrAttributesNotSupported, qname(t.Name), qname(a.Name))
				}
			}
			add(el)
			stack = append(stack, el)

		case xml.EndElement:
			k := len(stack)
			if k == 0 {
				return nil, fmt.Errorf("%w: unexpected </%s>", ErrInvalidXML, qname(t.Name))
			}
			top := stack[k-1]
			if top.Name != t.Name.Local || top.Prefix != t.Name.Space {
				return nil, fmt.Errorf("%w: </%s> closes <%s>", ErrInvalidXML, qname(t.Name), qname(xml.Name{Space: top.Prefix, Local: top.Name}))
			}
			stack = stack[:k-1]

		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			k := len(stack)
			if k == 0 {
				return nil, fmt.Errorf("%w: text outside the root element", ErrInvalidXML)
			}
			top := stack[k-1]
			if n := len(top.Children); n > 0 {
				if prev, ok := top.Children[n-1].(Text); ok {
					top.Children[n-1] = prev + Text(t)
					continue
				}
			}
			top.Children = append(top.Children, Text(t))

		case xml.ProcInst:
			switch t.Target {
			case "xml":
			case opaqueTarget:
				if len(stack) == 0 {
					return nil, fmt.Errorf("%w: opaque data outside the root element", ErrInvalidXML)
				}
				p, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(t.Inst)))
				if err != nil {
					return nil, fmt.Errorf("%w: opaque payload: %v", ErrInvalidXML, err)
				}
				add(Opaque(p))
			default:
				return nil, fmt.Errorf("%w: processing instruction %q", ErrUnsupportedFeature, t.Target)
			}
		}
	}

	if k := len(stack); k > 0 {
		return nil, fmt.Errorf("%w: <%s> is not closed", ErrInvalidXML, stack[k-1].Name)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrInvalidXML)
	}
	if err := ResolveNamespaces(doc, table); err != nil {
		return nil, err
	}
	return doc, nil
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
