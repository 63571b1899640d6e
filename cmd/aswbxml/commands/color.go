package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"
)

// ResolveColor turns a --color value into a decision. "auto" colors only
// when fd is a terminal.
func ResolveColor(mode string, fd uintptr) (bool, error) {
	switch strings.ToLower(mode) {
	case "", "auto":
		return term.IsTerminal(int(fd)), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid color mode: %s (must be auto, always, or never)", mode)
	}
}

// writeHighlighted writes source to w, syntax highlighted for a 256-color
// terminal. On highlighter failure the plain text is written.
func writeHighlighted(w io.Writer, source, language string) error {
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, source, language, "terminal256", "monokai"); err != nil {
		_, err = io.WriteString(w, source)
		return err
	}
	_, err := io.WriteString(w, buffer.String())
	return err
}
