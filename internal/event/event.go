// Package event defines the typed action log shared by every pipeline
// stage. Each stage appends immutable records describing what it observed
// or changed; the accumulated log becomes the "steps" section of the plan
// artifact and feeds the CLI/TUI live output.
package event

import "strings"

// Data carries optional structured payload attached to an event.
type Data map[string]any

// Event is a single append-only action-log record. Events are never
// mutated after being appended.
type Event struct {
	Code      string `json:"code"`
	Phase     string `json:"phase"`
	Message   string `json:"message"`
	Iteration int    `json:"iteration"`
	Data      Data   `json:"data,omitempty"`
}

// Handler is a callback that observes events as they are appended.
type Handler func(Event)

// Log is an ordered, append-only event recorder. One Log is created per
// top-level invocation and passed into every stage. The pipeline is
// single-threaded, so Log needs no locking; it must not be shared across
// goroutines without external synchronization.
type Log struct {
	events     []Event
	iteration  int
	handler    Handler
	previewLen int
}

// NewLog creates an empty log for one invocation.
func NewLog() *Log {
	return &Log{previewLen: PreviewMaxLen}
}

// SetPreviewMaxLen bounds the line previews recorded by this log.
func (l *Log) SetPreviewMaxLen(n int) {
	if n > 0 {
		l.previewLen = n
	}
}

// Preview returns a bounded, newline-escaped excerpt of text using this
// log's configured bound.
func (l *Log) Preview(text string) string {
	return Preview(text, l.previewLen)
}

// SetHandler registers a live observer called for every appended event.
func (l *Log) SetHandler(fn Handler) {
	l.handler = fn
}

// SetIteration stamps all subsequently appended events with the given
// round number. The iterative driver advances this at the top of each
// round; scan and single-pass modes leave it at zero.
func (l *Log) SetIteration(n int) {
	l.iteration = n
}

// Iteration returns the current round stamp.
func (l *Log) Iteration() int {
	return l.iteration
}

// Append records an event with the current iteration stamp.
func (l *Log) Append(code, phase, message string, data Data) {
	ev := Event{
		Code:      code,
		Phase:     phase,
		Message:   message,
		Iteration: l.iteration,
		Data:      data,
	}
	l.events = append(l.events, ev)
	if l.handler != nil {
		l.handler(ev)
	}
}

// Events returns the recorded events in append order.
func (l *Log) Events() []Event {
	return l.events
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	return len(l.events)
}

// PreviewMaxLen is the default bound for Preview.
const PreviewMaxLen = 80

// Preview returns a bounded, newline-escaped excerpt of text for use in
// event payloads. Full lines are never logged.
func Preview(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = PreviewMaxLen
	}
	escaped := strings.ReplaceAll(text, "\n", "\\n")
	if len(escaped) <= maxLen {
		return escaped
	}
	return escaped[:maxLen] + "..."
}
