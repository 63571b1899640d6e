// Package commands implements the aswbxml-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/easwire/aswbxml-go/pkg/codepage"
	"github.com/easwire/aswbxml-go/pkg/log"
	"github.com/easwire/aswbxml-go/pkg/wbxml"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	TraceID   string
	Direction *log.Direction
	Category  *log.Category
}

// ViewOptions controls how events are rendered.
type ViewOptions struct {
	// XML decodes captured documents and prints them as indented XML.
	XML bool
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event, opts ViewOptions) {
	// Header line: timestamp [trace:id] DIRECTION CATEGORY source
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [trace:%s] %-6s %s", ts, shortenTraceID(event.TraceID),
		event.Direction.String(), event.Category.String())
	if event.Source != "" {
		fmt.Fprintf(w, " %s", event.Source)
	}
	fmt.Fprintln(w)

	switch {
	case event.Document != nil:
		formatDocumentDetails(w, event.Document, opts)
	case event.Warning != nil:
		formatWarningDetails(w, event.Warning)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenTraceID returns the first 8 characters of the trace ID.
func shortenTraceID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatDocumentDetails writes document summary details.
func formatDocumentDetails(w io.Writer, doc *log.DocumentEvent, opts ViewOptions) {
	fmt.Fprintf(w, "  Size: %d bytes\n", doc.Size)
	if doc.Root != "" {
		fmt.Fprintf(w, "  Root: %s\n", doc.Root)
	}
	fmt.Fprintf(w, "  Elements: %d  Depth: %d\n", doc.Elements, doc.MaxDepth)
	if len(doc.Pages) > 0 {
		fmt.Fprintf(w, "  Pages: %s\n", formatPages(doc.Pages))
	}
	if doc.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(doc.Duration))
	}
	if len(doc.Data) == 0 {
		return
	}
	fmt.Fprintf(w, "  Data: %s", wbxml.FormatHex(doc.Data))
	if doc.Truncated {
		fmt.Fprintf(w, " (truncated)")
	}
	fmt.Fprintln(w)

	if !opts.XML || doc.Truncated {
		return
	}
	tree, err := wbxml.Decode(doc.Data, nil)
	if err != nil {
		fmt.Fprintf(w, "  XML: %v\n", err)
		return
	}
	out, err := wbxml.FormatXML(tree, &wbxml.XMLOptions{Indent: "  "})
	if err != nil {
		fmt.Fprintf(w, "  XML: %v\n", err)
		return
	}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}

// formatPages renders page indexes with their table names.
func formatPages(pages []uint8) string {
	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = pageName(p)
	}
	return strings.Join(names, ", ")
}

// pageName returns "Name(index)" for pages of the embedded table and the bare
// index otherwise.
func pageName(index uint8) string {
	if p, ok := codepage.Default().Page(int(index)); ok {
		return fmt.Sprintf("%s(%d)", p.Name, index)
	}
	return fmt.Sprintf("%d", index)
}

// formatWarningDetails writes placeholder warning details.
func formatWarningDetails(w io.Writer, warn *log.WarningEvent) {
	fmt.Fprintf(w, "  Offset: %d\n", warn.Offset)
	fmt.Fprintf(w, "  Page: %s  Token: 0x%02X\n", pageName(warn.Page), warn.Token)
	fmt.Fprintf(w, "  Placeholder: %s\n", warn.Placeholder)
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Kind: %s\n", err.Kind)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Offset != nil {
		fmt.Fprintf(w, "  Offset: %d\n", *err.Offset)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// matches reports whether the event passes the view filter.
func (f ViewFilter) matches(e log.Event) bool {
	lf := log.Filter{TraceID: f.TraceID, Direction: f.Direction, Category: f.Category}
	return lf.Matches(e)
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	return parseDirection(s)
}

// parseDirection parses a direction string (case-insensitive).
func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "decode":
		return log.DirectionDecode, nil
	case "encode":
		return log.DirectionEncode, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be decode or encode)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "document":
		return log.CategoryDocument, nil
	case "warning":
		return log.CategoryWarning, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be document, warning, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, opts ViewOptions, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if !filter.matches(event) {
			continue
		}
		formatEvent(output, event, opts)
	}

	return nil
}
