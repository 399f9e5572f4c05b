package stream

import (
	"draftgen/backend/internal/model"
)

// Event is one parsed frame from a generation stream. It is a closed set:
// the only implementations are the event types in this file. Consumers
// dispatch with a type switch; an unrecognized wire type never produces an
// Event at all (the parser drops the frame).
type Event interface {
	isEvent()
}

// TokenEvent carries an incremental piece of generated text. Tokens are
// appended to the accumulated content in arrival order, never deduplicated.
type TokenEvent struct {
	Content string
}

// CitationEvent carries a source citation. A citation with a previously seen
// number replaces that entry's payload in place; a new number is appended.
type CitationEvent struct {
	Citation model.Citation
}

// StatusEvent carries a human-readable progress message that replaces the
// previous status wholesale.
type StatusEvent struct {
	Message string
}

// DoneEvent signals successful completion of the generation.
type DoneEvent struct {
	GenerationID string
	Confidence   float64
	SourcesUsed  int
}

// ErrorEvent signals a terminal failure reported by the upstream mid-stream.
// The message is surfaced verbatim; the stream is considered complete.
type ErrorEvent struct {
	Message string
}

func (TokenEvent) isEvent()    {}
func (CitationEvent) isEvent() {}
func (StatusEvent) isEvent()   {}
func (DoneEvent) isEvent()     {}
func (ErrorEvent) isEvent()    {}
