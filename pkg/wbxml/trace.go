package wbxml

import (
	"time"

	"github.com/google/uuid"

	"github.com/easwire/aswbxml-go/pkg/log"
)

// tracer emits the events of one decode or encode call. A nil tracer
// discards everything, so call sites need no logger checks.
type tracer struct {
	logger    log.Logger
	traceID   string
	source    string
	direction log.Direction
	start     time.Time
}

func newTracer(logger log.Logger, traceID, source string, dir log.Direction) *tracer {
	if logger == nil {
		return nil
	}
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return &tracer{
		logger:    logger,
		traceID:   traceID,
		source:    source,
		direction: dir,
		start:     time.Now(),
	}
}

func (t *tracer) event(cat log.Category) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		TraceID:   t.traceID,
		Direction: t.direction,
		Category:  cat,
		Source:    t.source,
	}
}

// placeholder records an unassigned token the decoder renamed.
func (t *tracer) placeholder(offset, page int, token byte, name string) {
	if t == nil {
		return
	}
	ev := t.event(log.CategoryWarning)
	ev.Warning = &log.WarningEvent{
		Offset:      offset,
		Page:        uint8(page),
		Token:       token,
		Placeholder: name,
	}
	t.logger.Log(ev)
}

// document records a completed call. data is the WBXML side of the
// conversion: the input when decoding, the output when encoding.
func (t *tracer) document(data []byte, doc *Document) {
	if t == nil {
		return
	}
	stats := ComputeStats(doc)
	pages := make([]uint8, len(stats.Pages))
	for i, p := range stats.Pages {
		pages[i] = uint8(p)
	}
	captured, truncated := log.CaptureData(data)

	ev := t.event(log.CategoryDocument)
	ev.Document = &log.DocumentEvent{
		Size:      len(data),
		Elements:  stats.Elements,
		MaxDepth:  stats.MaxDepth,
		Pages:     pages,
		Data:      captured,
		Truncated: truncated,
		Duration:  time.Since(t.start),
	}
	if root := doc.Root(); root != nil {
		ev.Document.Root = root.Name
	}
	t.logger.Log(ev)
}

// fail records a failed call.
func (t *tracer) fail(err error) {
	if t == nil {
		return
	}
	ev := t.event(log.CategoryError)
	ev.Error = &log.ErrorEventData{
		Kind:    ErrorKind(err),
		Message: err.Error(),
	}
	if off, ok := ErrorOffset(err); ok {
		ev.Error.Offset = &off
	}
	t.logger.Log(ev)
}
