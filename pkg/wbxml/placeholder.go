package wbxml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/easwire/aswbxml-go/pkg/codepage"
)

const placeholderPrefix = "UNKNOWN_TAG_"

// PlaceholderName returns the tag name the decoder uses for a token with no
// entry on the active code page, e.g. "UNKNOWN_TAG_3F".
func PlaceholderName(token byte) string {
	return fmt.Sprintf("%s%02X", placeholderPrefix, token)
}

// ParsePlaceholder reverses PlaceholderName. It accepts only names the
// decoder can produce: two upper-case hex digits naming a tag token.
func ParsePlaceholder(name string) (byte, bool) {
	hex, ok := strings.CutPrefix(name, placeholderPrefix)
	if !ok || len(hex) != 2 || strings.ToUpper(hex) != hex {
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 8)
	if err != nil || v < codepage.MinToken || v > codepage.MaxToken {
		return 0, false
	}
	return byte(v), true
}
