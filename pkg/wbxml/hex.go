package wbxml

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// ParseHex decodes a hex dump such as "03 01 6A 00" or "03:01:6a:00".
// Whitespace, colons and an optional 0x prefix per group are ignored.
func ParseHex(s string) ([]byte, error) {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ':' || r == ','
	}) {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		sb.WriteString(f)
	}
	b, err := hex.DecodeString(sb.String())
	if err != nil {
		return nil, fmt.Errorf("parsing hex: %w", err)
	}
	return b, nil
}

// FormatHex renders data as space-separated upper-case byte pairs.
func FormatHex(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * 3)
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
