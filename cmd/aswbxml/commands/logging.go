package commands

import (
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/easwire/aswbxml-go/pkg/log"
)

// NewCommandLogger creates the operational logger for a command. When w is a
// terminal the output is human-readable text, otherwise JSON.
func NewCommandLogger(w *os.File, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if term.IsTerminal(int(w.Fd())) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// EventLogger receives codec events for the duration of a command.
type EventLogger struct {
	log.Logger
	file *log.FileLogger
}

// OpenEventLogger routes codec events to slogger and, when path is not
// empty, appends them to the .wlog file at path.
func OpenEventLogger(path string, slogger *slog.Logger) (*EventLogger, error) {
	adapter := log.NewSlogAdapter(slogger)
	if path == "" {
		return &EventLogger{Logger: adapter}, nil
	}
	file, err := log.NewFileLogger(path)
	if err != nil {
		return nil, err
	}
	return &EventLogger{
		Logger: log.NewMultiLogger(file, adapter),
		file:   file,
	}, nil
}

// Close closes the event file, if any.
func (l *EventLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
