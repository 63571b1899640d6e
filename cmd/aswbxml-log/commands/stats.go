package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/easwire/aswbxml-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	ErrorsByKind      map[string]int
	Placeholders      map[string]int
	Sources           map[string]*SourceStats
	BytesDecoded      int
	BytesEncoded      int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SourceStats holds statistics for a single source label.
type SourceStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Documents int
	Errors    int
}

// unlabeled is the source key for events without a source.
const unlabeled = "(none)"

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := collectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func collectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		ErrorsByKind:      make(map[string]int),
		Placeholders:      make(map[string]int),
		Sources:           make(map[string]*SourceStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++
		stats.EventsByDirection[event.Direction]++

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		// Track source stats
		key := event.Source
		if key == "" {
			key = unlabeled
		}
		src, ok := stats.Sources[key]
		if !ok {
			src = &SourceStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Sources[key] = src
		}
		src.Events++
		if event.Timestamp.After(src.LastSeen) {
			src.LastSeen = event.Timestamp
		}

		switch {
		case event.Document != nil:
			src.Documents++
			if event.Direction == log.DirectionEncode {
				stats.BytesEncoded += event.Document.Size
			} else {
				stats.BytesDecoded += event.Document.Size
			}
		case event.Warning != nil:
			stats.Placeholders[event.Warning.Placeholder]++
		case event.Error != nil:
			src.Errors++
			stats.ErrorsByKind[event.Error.Kind]++
		}
	}
	return stats, nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== WBXML Codec Log Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by direction
	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionDecode, log.DirectionEncode} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Events by category
	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryDocument, log.CategoryWarning, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Bytes
	fmt.Fprintf(w, "Bytes Decoded: %d\n", stats.BytesDecoded)
	fmt.Fprintf(w, "Bytes Encoded: %d\n", stats.BytesEncoded)

	// Sources
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sources: %d\n", len(stats.Sources))
	if len(stats.Sources) > 0 {
		// Sort by first seen time
		type sourceInfo struct {
			name  string
			stats *SourceStats
		}
		srcs := make([]sourceInfo, 0, len(stats.Sources))
		for name, ss := range stats.Sources {
			srcs = append(srcs, sourceInfo{name, ss})
		}
		sort.Slice(srcs, func(i, j int) bool {
			if srcs[i].stats.FirstSeen.Equal(srcs[j].stats.FirstSeen) {
				return srcs[i].name < srcs[j].name
			}
			return srcs[i].stats.FirstSeen.Before(srcs[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range srcs {
			fmt.Fprintf(w, "  %s: %d events, %d documents, %d errors\n",
				s.name, s.stats.Events, s.stats.Documents, s.stats.Errors)
		}
	}

	// Placeholders
	if len(stats.Placeholders) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Unknown Tokens:")
		printCounts(w, stats.Placeholders)
	}

	// Errors
	if len(stats.ErrorsByKind) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.EventsByCategory[log.CategoryError])
		printCounts(w, stats.ErrorsByKind)
	}
}

// printCounts writes a name/count map sorted by name.
func printCounts(w io.Writer, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-20s %d\n", name+":", counts[name])
	}
}
