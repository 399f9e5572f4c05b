package stream

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"draftgen/backend/internal/model"
)

// Wire field prefixes, per the SSE convention the upstream follows.
const (
	fieldData    = "data:"
	fieldID      = "id:"
	fieldComment = ":"
)

// frameEnvelope is the decoded shape of one `data:` payload. All variant
// fields live flat in the object, discriminated by Type.
type frameEnvelope struct {
	Type string `json:"type"`

	// token
	Content string `json:"content"`

	// citation
	Number        int     `json:"number"`
	DocumentID    string  `json:"document_id"`
	DocumentName  string  `json:"document_name"`
	PageNumber    int     `json:"page_number"`
	SectionHeader string  `json:"section_header"`
	Excerpt       string  `json:"excerpt"`
	CharStart     int     `json:"char_start"`
	CharEnd       int     `json:"char_end"`
	Confidence    float64 `json:"confidence"`

	// status, error
	Message string `json:"message"`

	// done (also reuses Confidence)
	GenerationID string `json:"generation_id"`
	SourcesUsed  int    `json:"sources_used"`
}

// FrameParser turns raw incoming chunks into discrete typed events. Chunk
// boundaries are arbitrary: a frame split across chunks is buffered until its
// terminating blank line arrives, and a chunk may carry any number of
// complete frames. A frame body that fails to decode is dropped (logged at
// debug level) and parsing continues; one malformed event never aborts the
// session.
type FrameParser struct {
	buf         bytes.Buffer
	lastEventID string
}

func NewFrameParser() *FrameParser {
	return &FrameParser{}
}

// Feed appends a chunk to the internal buffer and returns every event whose
// frame is now complete, in arrival order.
func (p *FrameParser) Feed(chunk []byte) []Event {
	p.buf.Write(chunk)

	var events []Event
	for {
		raw := p.buf.Bytes()
		end, next := frameEnd(raw)
		if end < 0 {
			break
		}
		frame := make([]byte, end)
		copy(frame, raw[:end])
		p.buf.Next(next)

		if ev, ok := p.decodeFrame(frame); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Flush decodes whatever remains in the buffer as a final frame. Some
// upstreams end the body right after the last data line without a trailing
// blank line; without this the final event would be lost at EOF.
func (p *FrameParser) Flush() []Event {
	raw := p.buf.Bytes()
	if len(bytes.TrimSpace(raw)) == 0 {
		p.buf.Reset()
		return nil
	}
	frame := make([]byte, len(raw))
	copy(frame, raw)
	p.buf.Reset()

	if ev, ok := p.decodeFrame(frame); ok {
		return []Event{ev}
	}
	return nil
}

// LastEventID reports the most recent `id:` field seen on the wire, or ""
// if the upstream has not sent one. The caller records it as the resumption
// marker for reconnects.
func (p *FrameParser) LastEventID() string {
	return p.lastEventID
}

// frameEnd locates the blank line terminating the first complete frame in
// raw. It returns the frame length and the offset of the byte after the
// terminator, or (-1, 0) when no complete frame is buffered yet. Both LF and
// CRLF line endings are tolerated.
func frameEnd(raw []byte) (end, next int) {
	if i := bytes.Index(raw, []byte("\n\n")); i >= 0 {
		return i, i + 2
	}
	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		return i, i + 4
	}
	return -1, 0
}

// decodeFrame parses one frame's lines, records any `id:` field, and decodes
// the joined `data:` payload into an Event.
func (p *FrameParser) decodeFrame(frame []byte) (Event, bool) {
	var data []byte
	for _, line := range bytes.Split(frame, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		s := string(line)
		switch {
		case len(s) >= len(fieldData) && s[:len(fieldData)] == fieldData:
			payload := bytes.TrimPrefix(line, []byte(fieldData))
			payload = bytes.TrimPrefix(payload, []byte(" "))
			if len(data) > 0 {
				data = append(data, '\n')
			}
			data = append(data, payload...)
		case len(s) >= len(fieldID) && s[:len(fieldID)] == fieldID:
			id := bytes.TrimPrefix(line, []byte(fieldID))
			p.lastEventID = string(bytes.TrimSpace(id))
		case len(s) > 0 && s[:1] == fieldComment:
			// keepalive comment
		}
	}
	if len(data) == 0 {
		return nil, false
	}

	var env frameEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Debug("Dropping malformed stream frame", "error", err)
		return nil, false
	}

	switch env.Type {
	case "token":
		return TokenEvent{Content: env.Content}, true
	case "citation":
		return CitationEvent{Citation: model.Citation{
			Number:        env.Number,
			DocumentID:    env.DocumentID,
			DocumentName:  env.DocumentName,
			PageNumber:    env.PageNumber,
			SectionHeader: env.SectionHeader,
			Excerpt:       env.Excerpt,
			CharStart:     env.CharStart,
			CharEnd:       env.CharEnd,
			Confidence:    env.Confidence,
		}}, true
	case "status":
		return StatusEvent{Message: env.Message}, true
	case "done":
		return DoneEvent{
			GenerationID: env.GenerationID,
			Confidence:   env.Confidence,
			SourcesUsed:  env.SourcesUsed,
		}, true
	case "error":
		return ErrorEvent{Message: env.Message}, true
	default:
		slog.Debug("Dropping stream frame with unknown type", "type", env.Type)
		return nil, false
	}
}
