package codepage

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/aswbxml-pagegen -in specs/aswbxml.yaml -out pages_gen.go

//go:embed specs/aswbxml.yaml
var embeddedTable []byte

// Token range available to per-page tags. Values below MinToken and at or
// above 0x40 collide with the WBXML global tokens.
const (
	MinToken = 0x05
	MaxToken = 0x3F
)

// PageCount is the number of code pages defined by MS-ASWBXML.
const PageCount = 26

// Table validation errors.
var (
	// ErrInvalidTable indicates the table data failed validation.
	ErrInvalidTable = errors.New("invalid code page table")
)

// CodePage is one token vocabulary. A CodePage is immutable once its Table
// has been built.
type CodePage struct {
	// Index is the page number carried by SWITCH_PAGE.
	Index int

	// Name is the human-readable page name (e.g. "AirSync").
	Name string

	// Namespace is the XML namespace URI (e.g. "AirSync:").
	Namespace string

	// Prefix is the default namespace prefix (e.g. "airsync").
	Prefix string

	// Reference is the protocol document describing the page's elements.
	Reference string

	tokenToTag map[byte]string
	tagToToken map[string]byte
	tokenToRef map[byte]string
	tokens     []byte
}

// Tag returns the tag name registered for token.
func (p *CodePage) Tag(token byte) (string, bool) {
	name, ok := p.tokenToTag[token]
	return name, ok
}

// Token returns the token registered for a tag name.
func (p *CodePage) Token(name string) (byte, bool) {
	tok, ok := p.tagToToken[name]
	return tok, ok
}

// Tokens returns the assigned tokens in ascending order.
func (p *CodePage) Tokens() []byte {
	out := make([]byte, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// Len returns the number of tags on the page.
func (p *CodePage) Len() int {
	return len(p.tokens)
}

// Table is the read-only registry of all code pages. It is safe for
// concurrent use.
type Table struct {
	Version string

	pages       []*CodePage
	byPrefix    map[string]int
	byNamespace map[string]int
}

// TagFor returns the tag name for token on page.
func (t *Table) TagFor(page int, token byte) (string, bool) {
	p, ok := t.Page(page)
	if !ok {
		return "", false
	}
	return p.Tag(token)
}

// TokenFor returns the token for a tag name on page. A false result means
// the tag cannot be encoded on that page.
func (t *Table) TokenFor(page int, name string) (byte, bool) {
	p, ok := t.Page(page)
	if !ok {
		return 0, false
	}
	return p.Token(name)
}

// ReferenceFor returns the documentation reference for token on page: the
// token's own reference if one is registered, otherwise the page reference.
// Unassigned tokens have no reference.
func (t *Table) ReferenceFor(page int, token byte) (string, bool) {
	p, ok := t.Page(page)
	if !ok {
		return "", false
	}
	if _, assigned := p.tokenToTag[token]; !assigned {
		return "", false
	}
	if ref, ok := p.tokenToRef[token]; ok {
		return ref, true
	}
	return p.Reference, p.Reference != ""
}

// PageForPrefix resolves a namespace prefix to a page index.
func (t *Table) PageForPrefix(prefix string) (int, bool) {
	idx, ok := t.byPrefix[prefix]
	return idx, ok
}

// PageForNamespace resolves a namespace URI to a page index.
func (t *Table) PageForNamespace(uri string) (int, bool) {
	idx, ok := t.byNamespace[uri]
	return idx, ok
}

// Page returns the page with the given index.
func (t *Table) Page(index int) (*CodePage, bool) {
	if index < 0 || index >= len(t.pages) {
		return nil, false
	}
	return t.pages[index], true
}

// Pages returns all pages ordered by index.
func (t *Table) Pages() []*CodePage {
	out := make([]*CodePage, len(t.pages))
	copy(out, t.pages)
	return out
}

// Len returns the number of pages.
func (t *Table) Len() int {
	return len(t.pages)
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// RawTable is the YAML form of the code page table.
type RawTable struct {
	Version string    `yaml:"version"`
	Pages   []RawPage `yaml:"pages"`
}

// RawPage is the YAML form of one code page.
type RawPage struct {
	Index     int      `yaml:"index"`
	Name      string   `yaml:"name"`
	Namespace string   `yaml:"namespace"`
	Prefix    string   `yaml:"prefix"`
	Ref       string   `yaml:"ref"`
	Tags      []RawTag `yaml:"tags"`
}

// RawTag is the YAML form of one token/tag pair.
type RawTag struct {
	Token int    `yaml:"token"`
	Name  string `yaml:"name"`
	Ref   string `yaml:"ref"`
}

// Parse parses YAML table data without validating it.
func Parse(data []byte) (*RawTable, error) {
	var raw RawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing code page table: %w", err)
	}
	return &raw, nil
}

// Load parses and validates YAML table data and builds a Table.
func Load(data []byte) (*Table, error) {
	raw, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Build(raw)
}

// Build validates a raw table and builds the lookup structures.
func Build(raw *RawTable) (*Table, error) {
	if len(raw.Pages) != PageCount {
		return nil, fmt.Errorf("%w: %d pages, want %d", ErrInvalidTable, len(raw.Pages), PageCount)
	}

	t := &Table{
		Version:     raw.Version,
		pages:       make([]*CodePage, PageCount),
		byPrefix:    make(map[string]int, PageCount),
		byNamespace: make(map[string]int, PageCount),
	}

	for i, rp := range raw.Pages {
		if rp.Index != i {
			return nil, fmt.Errorf("%w: page %q at position %d has index %d", ErrInvalidTable, rp.Name, i, rp.Index)
		}
		if rp.Namespace == "" || rp.Prefix == "" {
			return nil, fmt.Errorf("%w: page %d needs a namespace and a prefix", ErrInvalidTable, i)
		}
		if prev, dup := t.byNamespace[rp.Namespace]; dup {
			return nil, fmt.Errorf("%w: namespace %q used by pages %d and %d", ErrInvalidTable, rp.Namespace, prev, i)
		}
		if prev, dup := t.byPrefix[rp.Prefix]; dup {
			return nil, fmt.Errorf("%w: prefix %q used by pages %d and %d", ErrInvalidTable, rp.Prefix, prev, i)
		}

		page, err := buildPage(rp)
		if err != nil {
			return nil, err
		}
		t.pages[i] = page
		t.byNamespace[rp.Namespace] = i
		t.byPrefix[rp.Prefix] = i
	}

	return t, nil
}

func buildPage(rp RawPage) (*CodePage, error) {
	p := &CodePage{
		Index:      rp.Index,
		Name:       rp.Name,
		Namespace:  rp.Namespace,
		Prefix:     rp.Prefix,
		Reference:  rp.Ref,
		tokenToTag: make(map[byte]string, len(rp.Tags)),
		tagToToken: make(map[string]byte, len(rp.Tags)),
		tokenToRef: make(map[byte]string),
	}

	for _, tag := range rp.Tags {
		if tag.Token < MinToken || tag.Token > MaxToken {
			return nil, fmt.Errorf("%w: page %d tag %q token 0x%02X outside 0x%02X-0x%02X",
				ErrInvalidTable, rp.Index, tag.Name, tag.Token, MinToken, MaxToken)
		}
		if tag.Name == "" {
			return nil, fmt.Errorf("%w: page %d token 0x%02X has no name", ErrInvalidTable, rp.Index, tag.Token)
		}
		tok := byte(tag.Token)
		if prev, dup := p.tokenToTag[tok]; dup {
			return nil, fmt.Errorf("%w: page %d token 0x%02X assigned to %q and %q",
				ErrInvalidTable, rp.Index, tok, prev, tag.Name)
		}
		if prev, dup := p.tagToToken[tag.Name]; dup {
			return nil, fmt.Errorf("%w: page %d tag %q has tokens 0x%02X and 0x%02X",
				ErrInvalidTable, rp.Index, tag.Name, prev, tok)
		}
		p.tokenToTag[tok] = tag.Name
		p.tagToToken[tag.Name] = tok
		if tag.Ref != "" {
			p.tokenToRef[tok] = tag.Ref
		}
		p.tokens = append(p.tokens, tok)
	}

	slices.Sort(p.tokens)
	return p, nil
}

// ---------------------------------------------------------------------------
// Default table
// ---------------------------------------------------------------------------

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded MS-ASWBXML table. It is built on first use
// and shared by all callers.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(embeddedTable)
		if err != nil {
			panic(fmt.Sprintf("codepage: embedded table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// EmbeddedYAML returns a copy of the embedded table source.
func EmbeddedYAML() []byte {
	out := make([]byte, len(embeddedTable))
	copy(out, embeddedTable)
	return out
}
