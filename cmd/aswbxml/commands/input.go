// Package commands implements the aswbxml CLI commands.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/easwire/aswbxml-go/pkg/wbxml"
)

// ReadInput reads the named file, or stdin when path is "-". With hex set
// the content is a hex dump and is converted to bytes.
func ReadInput(path string, stdin io.Reader, hex bool) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if !hex {
		return data, nil
	}
	out, err := wbxml.ParseHex(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return out, nil
}

// SourceName returns the label used for codec events read from path.
func SourceName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
