package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes codec events to an slog.Logger. Documents log at
// Debug, warnings at Warn and errors at Error.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter returns an adapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event as a single record.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("trace_id", event.TraceID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}

	level := slog.LevelDebug
	msg := "wbxml"
	switch {
	case event.Document != nil:
		d := event.Document
		attrs = append(attrs,
			slog.Int("size", d.Size),
			slog.Int("elements", d.Elements),
			slog.Int("max_depth", d.MaxDepth),
		)
		if d.Root != "" {
			attrs = append(attrs, slog.String("root", d.Root))
		}
		if d.Duration > 0 {
			attrs = append(attrs, slog.Duration("duration", d.Duration))
		}
		if d.Truncated {
			attrs = append(attrs, slog.Bool("truncated", true))
		}
	case event.Warning != nil:
		level = slog.LevelWarn
		msg = "wbxml: unassigned token"
		attrs = append(attrs,
			slog.Int("offset", event.Warning.Offset),
			slog.Int("page", int(event.Warning.Page)),
			slog.Int("token", int(event.Warning.Token)),
			slog.String("placeholder", event.Warning.Placeholder),
		)
	case event.Error != nil:
		level = slog.LevelError
		msg = "wbxml: " + event.Error.Message
		attrs = append(attrs, slog.String("kind", event.Error.Kind))
		if event.Error.Offset != nil {
			attrs = append(attrs, slog.Int("offset", *event.Error.Offset))
		}
	}

	a.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
