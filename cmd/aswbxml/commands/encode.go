package commands

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/easwire/aswbxml-go/pkg/log"
	"github.com/easwire/aswbxml-go/pkg/wbxml"
)

// EncodeOptions controls the encode command.
type EncodeOptions struct {
	// Format is the input format: xml, json or cbor.
	Format string

	// Hex writes the output as a hex dump instead of raw bytes.
	Hex bool

	Source string
}

// RunEncode reads a tree in the requested format and writes its WBXML
// encoding to w. logger may be nil.
func RunEncode(input []byte, opts EncodeOptions, logger log.Logger, w io.Writer) error {
	doc, err := parseDocument(input, opts.Format)
	if err != nil {
		return err
	}
	data, err := wbxml.Encode(doc, &wbxml.EncodeOptions{
		Logger: logger,
		Source: opts.Source,
	})
	if err != nil {
		return err
	}
	if opts.Hex {
		_, err = fmt.Fprintln(w, wbxml.FormatHex(data))
		return err
	}
	_, err = w.Write(data)
	return err
}

// parseDocument builds a tree from XML or from an exported JSON or CBOR
// tree.
func parseDocument(input []byte, format string) (*wbxml.Document, error) {
	switch strings.ToLower(format) {
	case "", FormatXML:
		return wbxml.ParseXML(bytes.NewReader(input), nil)
	case FormatJSON:
		return wbxml.UnmarshalTreeJSON(input)
	case FormatCBOR:
		return wbxml.UnmarshalTree(input)
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: xml, json, cbor)", format)
	}
}
