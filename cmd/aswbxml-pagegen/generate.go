package main

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/easwire/aswbxml-go/pkg/codepage"
)

const pagesTmpl = `// Code generated by aswbxml-pagegen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

// Code page indexes.
const (
{{- range .Pages}}
{{.Const}} = {{.Index}}
{{- end}}
)
`

var pagesTemplate = template.Must(template.New("pages").Parse(pagesTmpl))

type pagesData struct {
	Source  string
	Package string
	Pages   []pageConst
}

type pageConst struct {
	Const string
	Index int
}

// GeneratePages renders the page index constants for raw. The output is not
// gofmt-aligned; writeFormatted takes care of that.
func GeneratePages(raw *codepage.RawTable, pkg, source string) (string, error) {
	data := pagesData{Source: source, Package: pkg}
	seen := make(map[string]int, len(raw.Pages))
	for _, p := range raw.Pages {
		name := constName(p.Name)
		if name == "Page" {
			return "", fmt.Errorf("page %d: name %q yields no identifier", p.Index, p.Name)
		}
		if prev, dup := seen[name]; dup {
			return "", fmt.Errorf("pages %d and %d both map to %s", prev, p.Index, name)
		}
		seen[name] = p.Index
		data.Pages = append(data.Pages, pageConst{Const: name, Index: p.Index})
	}

	var b strings.Builder
	if err := pagesTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("template pages: %w", err)
	}
	return b.String(), nil
}

// constName converts "AirSyncBase" to "PageAirSyncBase", dropping characters
// that are not valid in an identifier.
func constName(name string) string {
	var b strings.Builder
	b.WriteString("Page")
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
