package wbxml

import (
	"fmt"

	"github.com/easwire/aswbxml-go/pkg/codepage"
)

// noDefault marks a frame that undeclares the default namespace (xmlns="").
const noDefault = -1

// nsFrame holds the bindings declared by one element.
type nsFrame map[string]int

// nsScope tracks namespace bindings while walking a tree.
type nsScope struct {
	table  *codepage.Table
	frames []nsFrame
}

func newNSScope(table *codepage.Table) *nsScope {
	return &nsScope{table: table}
}

// push enters el, resolving each of its namespace declarations to a page.
func (s *nsScope) push(el *Element) error {
	if len(el.Namespaces) == 0 {
		s.frames = append(s.frames, nil)
		return nil
	}

	frame := make(nsFrame, len(el.Namespaces))
	uris := make(map[string]string, len(el.Namespaces))
	for _, ns := range el.Namespaces {
		if prev, dup := uris[ns.Prefix]; dup {
			if prev == ns.URI {
				continue
			}
			return fmt.Errorf("%w: %s declared as %q and %q on <%s>",
				ErrDuplicateNamespace, describePrefix(ns.Prefix), prev, ns.URI, el.Name)
		}
		uris[ns.Prefix] = ns.URI

		if ns.URI == "" && ns.Prefix == "" {
			frame[""] = noDefault
			continue
		}
		page, ok := s.table.PageForNamespace(ns.URI)
		if !ok {
			return fmt.Errorf("%w: %q declared on <%s>", ErrUnknownNamespace, ns.URI, el.Name)
		}
		frame[ns.Prefix] = page
	}
	s.frames = append(s.frames, frame)
	return nil
}

func (s *nsScope) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *nsScope) lookup(prefix string) (int, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if page, ok := s.frames[i][prefix]; ok {
			return page, true
		}
	}
	return 0, false
}

// pageOf resolves the code page of el, which must already be pushed. A
// prefix bound in scope wins, then a table prefix, then the default
// namespace, then el.Page.
func (s *nsScope) pageOf(el *Element) (int, error) {
	if el.Prefix != "" {
		if page, ok := s.lookup(el.Prefix); ok {
			return page, nil
		}
		if page, ok := s.table.PageForPrefix(el.Prefix); ok {
			return page, nil
		}
		return 0, fmt.Errorf("%w: prefix %q on <%s:%s> is not bound", ErrUnknownNamespace, el.Prefix, el.Prefix, el.Name)
	}
	if page, ok := s.lookup(""); ok && page != noDefault {
		return page, nil
	}
	if el.Page < 0 || el.Page >= s.table.Len() {
		return 0, fmt.Errorf("%w: %d on <%s>", ErrInvalidCodePage, el.Page, el.Name)
	}
	return el.Page, nil
}

func describePrefix(prefix string) string {
	if prefix == "" {
		return "default namespace"
	}
	return "prefix " + prefix
}

// ResolveNamespaces sets Page on every element of doc from its prefix and
// the namespace declarations in scope, the same way the encoder does. A nil
// table means codepage.Default().
func ResolveNamespaces(doc *Document, table *codepage.Table) error {
	if table == nil {
		table = codepage.Default()
	}
	scope := newNSScope(table)
	for _, c := range doc.Children {
		if err := resolveNode(scope, c); err != nil {
			return err
		}
	}
	return nil
}

func resolveNode(scope *nsScope, n Node) error {
	el, ok := n.(*Element)
	if !ok || el == nil {
		return nil
	}
	if err := scope.push(el); err != nil {
		return err
	}
	defer scope.pop()

	page, err := scope.pageOf(el)
	if err != nil {
		return err
	}
	el.Page = page
	for _, c := range el.Children {
		if err := resolveNode(scope, c); err != nil {
			return err
		}
	}
	return nil
}
