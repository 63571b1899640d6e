// Package codepage holds the MS-ASWBXML token tables.
//
// WBXML gives a tag byte its meaning only in the context of the active code
// page. ActiveSync defines 26 pages, one per XML namespace (AirSync, Email,
// Calendar, ...), each mapping tokens 0x05-0x3F to tag names.
//
// The table is data, not code: it lives in specs/aswbxml.yaml, is embedded
// into the binary and parsed once on first use:
//
//	t := codepage.Default()
//	name, ok := t.TagFor(codepage.PageAirSync, 0x05) // "Sync", true
//	tok, ok := t.TokenFor(codepage.PageEmail, "Subject")
//
// Tables are read-only after construction and safe for concurrent use.
// Alternative tables can be built with Load for testing or for servers that
// speak a newer protocol revision.
package codepage
