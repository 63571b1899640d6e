package wbxml

import (
	"errors"
	"fmt"
)

// Input errors. Every failure aborts the whole decode or encode call;
// use errors.Is to identify the kind.
var (
	// ErrTruncatedInput indicates the buffer ended in the middle of a field.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrMalformedString indicates an inline string without a NUL terminator.
	ErrMalformedString = errors.New("malformed string")

	// ErrVarUintOverflow indicates a multi-byte integer wider than 32 bits.
	ErrVarUintOverflow = errors.New("multi-byte integer overflows uint32")

	// ErrUnsupportedCharset indicates a charset other than UTF-8.
	ErrUnsupportedCharset = errors.New("unsupported charset")

	// ErrStringTableNotSupported indicates a non-empty string table.
	ErrStringTableNotSupported = errors.New("string table not supported")

	// ErrInvalidCodePage indicates a code page outside the table.
	ErrInvalidCodePage = errors.New("invalid code page")

	// ErrUnbalancedEnd indicates an END with no open element, or input that
	// ended while elements were still open.
	ErrUnbalancedEnd = errors.New("unbalanced END")

	// ErrUnsupportedFeature indicates a global token ActiveSync does not use.
	ErrUnsupportedFeature = errors.New("unsupported WBXML feature")

	// ErrAttributesNotSupported indicates a tag with the attribute bit set,
	// or an XML element carrying attributes.
	ErrAttributesNotSupported = errors.New("attributes not supported")

	// ErrInputTooLarge indicates the input exceeds DecodeOptions.MaxSize.
	ErrInputTooLarge = errors.New("input too large")
)

// Tree errors, reported by the encoder and the XML bridge.
var (
	// ErrUnknownNamespace indicates a namespace URI or prefix with no code page.
	ErrUnknownNamespace = errors.New("unknown namespace")

	// ErrDuplicateNamespace indicates one element declaring the same prefix
	// twice with different URIs.
	ErrDuplicateNamespace = errors.New("conflicting namespace declaration")

	// ErrUnencodableTag indicates a tag with no token on its code page.
	ErrUnencodableTag = errors.New("unencodable tag")

	// ErrInvalidTextContent indicates text containing a NUL byte.
	ErrInvalidTextContent = errors.New("invalid text content")

	// ErrInvalidXML indicates XML input that could not be turned into a tree.
	ErrInvalidXML = errors.New("invalid XML")
)

// OffsetError reports the input offset at which decoding failed.
type OffsetError struct {
	Offset int
	Err    error
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *OffsetError) Unwrap() error {
	return e.Err
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrTruncatedInput, "TruncatedInput"},
	{ErrMalformedString, "MalformedString"},
	{ErrVarUintOverflow, "VarUintOverflow"},
	{ErrUnsupportedCharset, "UnsupportedCharset"},
	{ErrStringTableNotSupported, "StringTableNotSupported"},
	{ErrInvalidCodePage, "InvalidCodePage"},
	{ErrUnbalancedEnd, "UnbalancedEnd"},
	{ErrUnsupportedFeature, "UnsupportedFeature"},
	{ErrAttributesNotSupported, "AttributesNotSupported"},
	{ErrInputTooLarge, "InputTooLarge"},
	{ErrUnknownNamespace, "UnknownNamespace"},
	{ErrDuplicateNamespace, "DuplicateNamespace"},
	{ErrUnencodableTag, "UnencodableTag"},
	{ErrInvalidTextContent, "InvalidTextContent"},
	{ErrInvalidXML, "InvalidXML"},
}

// ErrorKind returns the short name of the codec error wrapped by err, e.g.
// "UnbalancedEnd". It returns "" for nil and "Unknown" for errors that did
// not originate in this package.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Unknown"
}

// ErrorOffset returns the input offset recorded in err, if any.
func ErrorOffset(err error) (int, bool) {
	var oe *OffsetError
	if errors.As(err, &oe) {
		return oe.Offset, true
	}
	return 0, false
}
