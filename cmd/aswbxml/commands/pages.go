package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/easwire/aswbxml-go/pkg/codepage"
)

// RunPages lists the code pages of table, or the tokens of one page when
// selector names a page by index, name or prefix.
func RunPages(table *codepage.Table, selector string, w io.Writer) error {
	if table == nil {
		table = codepage.Default()
	}
	if selector == "" {
		listPages(table, w)
		return nil
	}
	page, err := FindPage(table, selector)
	if err != nil {
		return err
	}
	listTokens(table, page, w)
	return nil
}

// FindPage resolves a page by index, name or prefix (case-insensitive).
func FindPage(table *codepage.Table, selector string) (*codepage.CodePage, error) {
	if n, err := strconv.Atoi(selector); err == nil {
		if p, ok := table.Page(n); ok {
			return p, nil
		}
		return nil, fmt.Errorf("no code page %d (0-%d)", n, table.Len()-1)
	}
	for _, p := range table.Pages() {
		if strings.EqualFold(p.Name, selector) || strings.EqualFold(p.Prefix, selector) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no code page named %q", selector)
}

func listPages(table *codepage.Table, w io.Writer) {
	fmt.Fprintf(w, "MS-ASWBXML code pages (table version %s)\n\n", table.Version)
	fmt.Fprintf(w, "  %-3s %-18s %-20s %-18s %s\n", "#", "NAME", "NAMESPACE", "PREFIX", "TAGS")
	for _, p := range table.Pages() {
		fmt.Fprintf(w, "  %-3d %-18s %-20s %-18s %d\n", p.Index, p.Name, p.Namespace, p.Prefix, p.Len())
	}
}

func listTokens(table *codepage.Table, p *codepage.CodePage, w io.Writer) {
	fmt.Fprintf(w, "Page %d: %s (%s, prefix %s)\n", p.Index, p.Name, p.Namespace, p.Prefix)
	if p.Reference != "" {
		fmt.Fprintf(w, "Reference: %s\n", p.Reference)
	}
	if p.Len() == 0 {
		fmt.Fprintln(w, "\n  (no tags)")
		return
	}
	fmt.Fprintln(w)
	for _, tok := range p.Tokens() {
		name, _ := p.Tag(tok)
		line := fmt.Sprintf("  0x%02X  %s", tok, name)
		if ref, ok := table.ReferenceFor(p.Index, tok); ok && ref != p.Reference {
			line += "  " + ref
		}
		fmt.Fprintln(w, line)
	}
}
