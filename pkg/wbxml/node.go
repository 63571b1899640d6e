package wbxml

import (
	"bytes"
	"slices"
	"strings"
)

// Node is one of *Element, Text or Opaque.
type Node interface {
	isNode()
}

// Namespace is an XML namespace declaration. An empty Prefix declares the
// default namespace.
type Namespace struct {
	Prefix string
	URI    string
}

// Element is a tagged node with ordered children.
type Element struct {
	// Name is the tag name, e.g. "Sync".
	Name string

	// Page is the code page index the tag belongs to.
	Page int

	// Prefix is the namespace prefix the element is written with. When set,
	// the encoder resolves the page from the prefix instead of Page.
	Prefix string

	// Namespaces are the declarations made on this element.
	Namespaces []Namespace

	// Reference is an optional documentation link for the tag. It is never
	// encoded.
	Reference string

	Children []Node
}

// Text is an inline string leaf.
type Text string

// Opaque is a length-prefixed binary leaf.
type Opaque []byte

func (*Element) isNode() {}
func (Text) isNode()     {}
func (Opaque) isNode()   {}

// NewElement returns an element on page with the given children.
func NewElement(page int, name string, children ...Node) *Element {
	return &Element{Name: name, Page: page, Children: children}
}

// Append adds children and returns e for chaining.
func (e *Element) Append(children ...Node) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Text returns the concatenated Text children of e.
func (e *Element) Text() string {
	var sb strings.Builder
	for _, c := range e.Children {
		if t, ok := c.(Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

// Find returns the first child element named name.
func (e *Element) Find(name string) *Element {
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name == name {
			return el
		}
	}
	return nil
}

// FindPath follows a chain of child element names, e.g.
// root.FindPath("Collections", "Collection", "SyncKey").
func (e *Element) FindPath(names ...string) *Element {
	cur := e
	for _, n := range names {
		if cur = cur.Find(n); cur == nil {
			return nil
		}
	}
	return cur
}

// Document is the synthetic root of a decoded message. Its children are the
// top-level nodes, normally a single element.
type Document struct {
	Children []Node
}

// NewDocument returns a document holding the given top-level nodes.
func NewDocument(children ...Node) *Document {
	return &Document{Children: children}
}

// Root returns the first top-level element, or nil. A nil document has no
// root.
func (d *Document) Root() *Element {
	if d == nil {
		return nil
	}
	for _, c := range d.Children {
		if el, ok := c.(*Element); ok {
			return el
		}
	}
	return nil
}

// Walk visits every node in document order. depth is 1 for top-level
// nodes. Returning false from fn skips the node's children. Walking a nil
// document visits nothing.
func (d *Document) Walk(fn func(n Node, depth int) bool) {
	if d == nil {
		return
	}
	for _, c := range d.Children {
		walk(c, 1, fn)
	}
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if el, ok := n.(*Element); ok && el != nil {
		for _, c := range el.Children {
			walk(c, depth+1, fn)
		}
	}
}

// Equal reports whether two nodes are structurally equal: same tag names,
// pages, child order and leaf content. Prefixes, namespace declarations and
// references are presentation and are ignored.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Element:
		y, ok := b.(*Element)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		if x.Name != y.Name || x.Page != y.Page || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case Opaque:
		y, ok := b.(Opaque)
		return ok && bytes.Equal(x, y)
	default:
		return a == nil && b == nil
	}
}

// EqualDocuments reports whether two documents are structurally equal.
func EqualDocuments(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	return slices.EqualFunc(a.Children, b.Children, Equal)
}

// Stats summarizes a document.
type Stats struct {
	Elements int
	Texts    int
	Opaques  int
	MaxDepth int

	// Pages lists the code pages used, in order of first appearance.
	Pages []int
}

// ComputeStats walks doc and counts its nodes.
func ComputeStats(doc *Document) Stats {
	var s Stats
	seen := map[int]bool{}
	doc.Walk(func(n Node, depth int) bool {
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		switch v := n.(type) {
		case *Element:
			if v == nil {
				return false
			}
			s.Elements++
			if !seen[v.Page] {
				seen[v.Page] = true
				s.Pages = append(s.Pages, v.Page)
			}
		case Text:
			s.Texts++
		case Opaque:
			s.Opaques++
		}
		return true
	})
	return s
}
