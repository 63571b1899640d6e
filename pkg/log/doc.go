// Package log provides structured event logging for the WBXML codec.
//
// The codec itself never writes to a console. Callers that want a record of
// what was decoded or encoded pass a Logger in wbxml.DecodeOptions or
// wbxml.EncodeOptions and receive one Event per notable occurrence. This is
// separate from operational logging (slog): the event trace is
// machine-readable and can be replayed later by the aswbxml-log tool.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	opts.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For capture: write to a binary file
//	opts.Logger, _ = log.NewFileLogger("/var/log/eas/decoder.wlog")
//
//	// Both: use MultiLogger
//	opts.Logger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - Document: a call completed; carries size, element count, pages used
//     and (truncated) raw WBXML bytes.
//   - Warning: the decoder met a token with no tag on the active page and
//     substituted a placeholder name.
//   - Error: a call failed; carries the error kind and input offset.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys, using
// the .wlog extension.
package log
