package wbxml

import "fmt"

// Header values written by the encoder. The decoder only checks Charset and
// the string table length.
const (
	// Version13 is WBXML version 1.3.
	Version13 byte = 0x03

	// PublicIDUnknown is the "unknown or missing public identifier" value.
	PublicIDUnknown uint32 = 0x01

	// CharsetUTF8 is the IANA MIBenum for UTF-8.
	CharsetUTF8 uint32 = 0x6A
)

// Global tokens. These values have the same meaning on every code page.
const (
	SwitchPage byte = 0x00
	End        byte = 0x01
	Entity     byte = 0x02
	StrI       byte = 0x03
	Literal    byte = 0x04
	ExtI0      byte = 0x40
	ExtI1      byte = 0x41
	ExtI2      byte = 0x42
	PI         byte = 0x43
	LiteralC   byte = 0x44
	ExtT0      byte = 0x80
	ExtT1      byte = 0x81
	ExtT2      byte = 0x82
	StrT       byte = 0x83
	LiteralA   byte = 0x84
	Ext0       byte = 0xC0
	Ext1       byte = 0xC1
	Ext2       byte = 0xC2
	OpaqueData byte = 0xC3
	LiteralAC  byte = 0xC4
)

// Tag byte layout.
const (
	attrBit    = 0x80
	contentBit = 0x40
	tokenMask  = 0x3F
)

// globalNames names the global tokens for error messages.
var globalNames = map[byte]string{
	SwitchPage: "SWITCH_PAGE",
	End:        "END",
	Entity:     "ENTITY",
	StrI:       "STR_I",
	Literal:    "LITERAL",
	ExtI0:      "EXT_I_0",
	ExtI1:      "EXT_I_1",
	ExtI2:      "EXT_I_2",
	PI:         "PI",
	LiteralC:   "LITERAL_C",
	ExtT0:      "EXT_T_0",
	ExtT1:      "EXT_T_1",
	ExtT2:      "EXT_T_2",
	StrT:       "STR_T",
	LiteralA:   "LITERAL_A",
	Ext0:       "EXT_0",
	Ext1:       "EXT_1",
	Ext2:       "EXT_2",
	OpaqueData: "OPAQUE",
	LiteralAC:  "LITERAL_AC",
}

// GlobalTokenName returns the WBXML name of a global token, or "" if b is
// not a global token.
func GlobalTokenName(b byte) string {
	return globalNames[b]
}

// IsGlobalToken reports whether b is one of the global tokens.
func IsGlobalToken(b byte) bool {
	_, ok := globalNames[b]
	return ok
}

// isUnsupportedGlobal reports whether b is a global token that ActiveSync
// never uses.
func isUnsupportedGlobal(b byte) bool {
	switch b {
	case Entity, Literal, ExtI0, ExtI1, ExtI2, PI, LiteralC,
		ExtT0, ExtT1, ExtT2, StrT, LiteralA, Ext0, Ext1, Ext2, LiteralAC:
		return true
	}
	return false
}

// Tag is a tag byte: bit 7 flags attributes, bit 6 flags content and bits
// 0-5 carry the token.
type Tag byte

// NewTag builds a tag byte for token, setting the content bit if requested.
func NewTag(token byte, content bool) Tag {
	t := Tag(token & tokenMask)
	if content {
		t |= contentBit
	}
	return t
}

// HasAttributes reports whether the attribute bit is set.
func (t Tag) HasAttributes() bool {
	return t&attrBit != 0
}

// HasContent reports whether the content bit is set.
func (t Tag) HasContent() bool {
	return t&contentBit != 0
}

// Token returns the token carried in bits 0-5.
func (t Tag) Token() byte {
	return byte(t & tokenMask)
}

// String returns a compact description such as "0x45(token=0x05,content)".
func (t Tag) String() string {
	s := fmt.Sprintf("0x%02X(token=0x%02X", byte(t), t.Token())
	if t.HasContent() {
		s += ",content"
	}
	if t.HasAttributes() {
		s += ",attrs"
	}
	return s + ")"
}
