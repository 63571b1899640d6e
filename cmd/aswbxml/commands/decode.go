package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/easwire/aswbxml-go/pkg/log"
	"github.com/easwire/aswbxml-go/pkg/wbxml"
)

// Output formats for the decode command.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// DecodeOptions controls the decode command.
type DecodeOptions struct {
	Prefixes    bool
	References  bool
	StrictEnd   bool
	InitialPage int
	Indent      string
	Declaration bool
	Format      string
	Color       bool
	Source      string
}

// RunDecode decodes WBXML input and writes it to w in the requested format.
// logger may be nil.
func RunDecode(input []byte, opts DecodeOptions, logger log.Logger, w io.Writer) error {
	doc, err := wbxml.Decode(input, &wbxml.DecodeOptions{
		InitialPage: opts.InitialPage,
		Prefixes:    opts.Prefixes,
		References:  opts.References,
		StrictEnd:   opts.StrictEnd,
		Logger:      logger,
		Source:      opts.Source,
	})
	if err != nil {
		return err
	}
	return writeDocument(w, doc, opts)
}

func writeDocument(w io.Writer, doc *wbxml.Document, opts DecodeOptions) error {
	switch strings.ToLower(opts.Format) {
	case "", FormatXML:
		out, err := wbxml.FormatXML(doc, &wbxml.XMLOptions{
			Indent:      opts.Indent,
			Declaration: opts.Declaration,
			References:  opts.References,
		})
		if err != nil {
			return err
		}
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		if opts.Color {
			return writeHighlighted(w, out, "xml")
		}
		_, err = io.WriteString(w, out)
		return err

	case FormatJSON:
		out, err := wbxml.MarshalTreeJSON(doc)
		if err != nil {
			return err
		}
		out = append(out, '\n')
		if opts.Color {
			return writeHighlighted(w, string(out), "json")
		}
		_, err = w.Write(out)
		return err

	case FormatCBOR:
		out, err := wbxml.MarshalTree(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err

	default:
		return fmt.Errorf("unknown format: %s (supported: xml, json, cbor)", opts.Format)
	}
}
