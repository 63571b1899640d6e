// Package wbxml implements MS-ASWBXML, the binary XML encoding Exchange
// ActiveSync uses on the wire.
//
// A document is decoded into a tree of Node values: *Element, Text and
// Opaque, held by a *Document. Tag names come from the code page tables in
// package codepage; the active page changes with SWITCH_PAGE tokens.
//
// # Decoding
//
//	doc, err := wbxml.Decode(body, nil)
//	if err != nil {
//	    return err
//	}
//	key := doc.Root().FindPath("Collections", "Collection", "SyncKey").Text()
//
// Tokens with no tag on the active page decode to placeholder elements
// named UNKNOWN_TAG_XX (XX being the token in hex). Every other irregularity
// fails the whole call. Errors wrap a package sentinel; use errors.Is, or
// ErrorKind for a short name.
//
// # Encoding
//
//	doc := wbxml.NewDocument(
//	    wbxml.NewElement(codepage.PagePing, "Ping",
//	        wbxml.NewElement(codepage.PagePing, "HeartbeatInterval", wbxml.Text("480")),
//	    ),
//	)
//	body, err := wbxml.Encode(doc, nil)
//
// The encoder takes an element's page from its prefix and the namespace
// declarations in scope, so trees parsed from XML with ParseXML encode
// without setting Page by hand.
//
// # Supported subset
//
// ActiveSync uses WBXML 1.3 with UTF-8, no string table and no attributes.
// Entities, literal tags, processing instructions and extension tokens are
// rejected with ErrUnsupportedFeature.
package wbxml
