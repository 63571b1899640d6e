package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/easwire/aswbxml-go/pkg/log"
	"github.com/easwire/aswbxml-go/pkg/wbxml"
)

// ErrRoundtripMismatch is returned when the re-decoded tree differs from the
// first decode.
var ErrRoundtripMismatch = errors.New("round trip changed the document")

// RoundtripOptions controls the roundtrip command.
type RoundtripOptions struct {
	StrictEnd bool
	Source    string
}

// RunRoundtrip decodes input, re-encodes the tree and decodes the result
// again. It reports whether the two trees are equal and whether the bytes
// are identical. Differing bytes with equal trees is not an error.
func RunRoundtrip(input []byte, opts RoundtripOptions, logger log.Logger, w io.Writer) error {
	msg, err := wbxml.NewMessageFromBytes(input, &wbxml.DecodeOptions{
		StrictEnd: opts.StrictEnd,
		Logger:    logger,
		Source:    opts.Source,
	})
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	out, err := msg.Reencode(&wbxml.EncodeOptions{Logger: logger, Source: opts.Source})
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	again, err := wbxml.Decode(out, &wbxml.DecodeOptions{StrictEnd: true, Logger: logger, Source: opts.Source})
	if err != nil {
		return fmt.Errorf("re-decode: %w", err)
	}

	stats := wbxml.ComputeStats(msg.Document())
	fmt.Fprintf(w, "Input:     %d bytes, %d elements, depth %d\n", len(input), stats.Elements, stats.MaxDepth)
	fmt.Fprintf(w, "Re-encode: %d bytes\n", len(out))

	equal := wbxml.EqualDocuments(msg.Document(), again)
	if equal {
		fmt.Fprintln(w, "Structure: equal")
	} else {
		fmt.Fprintln(w, "Structure: DIFFERENT")
	}
	if bytes.Equal(msg.Bytes(), out) {
		fmt.Fprintln(w, "Bytes:     identical")
	} else {
		fmt.Fprintf(w, "Bytes:     differ at offset %d\n", firstDifference(msg.Bytes(), out))
	}

	if !equal {
		return ErrRoundtripMismatch
	}
	return nil
}

// firstDifference returns the first offset at which a and b differ.
func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
