package stream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftgen/backend/internal/stream"
)

func TestFrameParser_SingleFrame(t *testing.T) {
	p := stream.NewFrameParser()

	events := p.Feed([]byte("data: {\"type\":\"token\",\"content\":\"Hello\"}\n\n"))

	require.Len(t, events, 1)
	assert.Equal(t, stream.TokenEvent{Content: "Hello"}, events[0])
}

func TestFrameParser_FrameSplitAcrossChunks(t *testing.T) {
	p := stream.NewFrameParser()

	// The frame arrives in three arbitrary pieces; nothing is emitted until
	// the terminating blank line shows up.
	assert.Empty(t, p.Feed([]byte("data: {\"type\":\"tok")))
	assert.Empty(t, p.Feed([]byte("en\",\"content\":\"Hi\"}")))

	events := p.Feed([]byte("\n\n"))
	require.Len(t, events, 1)
	assert.Equal(t, stream.TokenEvent{Content: "Hi"}, events[0])
}

func TestFrameParser_MultipleFramesInOneChunk(t *testing.T) {
	p := stream.NewFrameParser()

	chunk := []byte("data: {\"type\":\"token\",\"content\":\"a\"}\n\n" +
		"data: {\"type\":\"status\",\"message\":\"Searching knowledge base\"}\n\n" +
		"data: {\"type\":\"token\",\"content\":\"b\"}\n\n")

	events := p.Feed(chunk)
	require.Len(t, events, 3)
	assert.Equal(t, stream.TokenEvent{Content: "a"}, events[0])
	assert.Equal(t, stream.StatusEvent{Message: "Searching knowledge base"}, events[1])
	assert.Equal(t, stream.TokenEvent{Content: "b"}, events[2])
}

func TestFrameParser_MalformedFrameIsDropped(t *testing.T) {
	p := stream.NewFrameParser()

	chunk := []byte("data: {\"type\":\"token\",\"content\":\"ok\"}\n\n" +
		"data: {not valid json\n\n" +
		"data: {\"type\":\"token\",\"content\":\"still ok\"}\n\n")

	events := p.Feed(chunk)
	require.Len(t, events, 2, "the malformed frame must not abort parsing")
	assert.Equal(t, stream.TokenEvent{Content: "ok"}, events[0])
	assert.Equal(t, stream.TokenEvent{Content: "still ok"}, events[1])
}

func TestFrameParser_UnknownTypeIsDropped(t *testing.T) {
	p := stream.NewFrameParser()

	events := p.Feed([]byte("data: {\"type\":\"telemetry\",\"content\":\"x\"}\n\ndata: {\"type\":\"token\",\"content\":\"y\"}\n\n"))

	require.Len(t, events, 1)
	assert.Equal(t, stream.TokenEvent{Content: "y"}, events[0])
}

func TestFrameParser_TracksLastEventID(t *testing.T) {
	p := stream.NewFrameParser()
	assert.Empty(t, p.LastEventID())

	p.Feed([]byte("id: 17\ndata: {\"type\":\"token\",\"content\":\"a\"}\n\n"))
	assert.Equal(t, "17", p.LastEventID())

	p.Feed([]byte("id: 18\ndata: {\"type\":\"token\",\"content\":\"b\"}\n\n"))
	assert.Equal(t, "18", p.LastEventID())

	// Frames without an id field leave the marker untouched.
	p.Feed([]byte("data: {\"type\":\"token\",\"content\":\"c\"}\n\n"))
	assert.Equal(t, "18", p.LastEventID())
}

func TestFrameParser_CRLFLineEndings(t *testing.T) {
	p := stream.NewFrameParser()

	events := p.Feed([]byte("id: 5\r\ndata: {\"type\":\"token\",\"content\":\"crlf\"}\r\n\r\n"))

	require.Len(t, events, 1)
	assert.Equal(t, stream.TokenEvent{Content: "crlf"}, events[0])
	assert.Equal(t, "5", p.LastEventID())
}

func TestFrameParser_KeepaliveCommentIgnored(t *testing.T) {
	p := stream.NewFrameParser()

	events := p.Feed([]byte(": keepalive\n\ndata: {\"type\":\"token\",\"content\":\"z\"}\n\n"))

	require.Len(t, events, 1)
	assert.Equal(t, stream.TokenEvent{Content: "z"}, events[0])
}

func TestFrameParser_CitationFrame(t *testing.T) {
	p := stream.NewFrameParser()

	chunk := []byte(`data: {"type":"citation","number":2,"document_id":"doc-9","document_name":"Security Handbook","page_number":14,"section_header":"Access Tokens","excerpt":"Tokens expire after one hour.","char_start":120,"char_end":180,"confidence":0.92}` + "\n\n")

	events := p.Feed(chunk)
	require.Len(t, events, 1)
	cit, ok := events[0].(stream.CitationEvent)
	require.True(t, ok)
	assert.Equal(t, 2, cit.Citation.Number)
	assert.Equal(t, "doc-9", cit.Citation.DocumentID)
	assert.Equal(t, "Security Handbook", cit.Citation.DocumentName)
	assert.Equal(t, 14, cit.Citation.PageNumber)
	assert.Equal(t, "Access Tokens", cit.Citation.SectionHeader)
	assert.Equal(t, 120, cit.Citation.CharStart)
	assert.Equal(t, 180, cit.Citation.CharEnd)
	assert.InDelta(t, 0.92, cit.Citation.Confidence, 1e-9)
}

func TestFrameParser_DoneAndErrorFrames(t *testing.T) {
	p := stream.NewFrameParser()

	events := p.Feed([]byte(`data: {"type":"done","generation_id":"gen-1","confidence":0.87,"sources_used":4}` + "\n\n" +
		`data: {"type":"error","message":"Insufficient sources"}` + "\n\n"))

	require.Len(t, events, 2)
	assert.Equal(t, stream.DoneEvent{GenerationID: "gen-1", Confidence: 0.87, SourcesUsed: 4}, events[0])
	assert.Equal(t, stream.ErrorEvent{Message: "Insufficient sources"}, events[1])
}

func TestFrameParser_FlushRecoversUnterminatedFrame(t *testing.T) {
	p := stream.NewFrameParser()

	// The body ends right after the data line, no trailing blank line.
	assert.Empty(t, p.Feed([]byte("data: {\"type\":\"done\",\"generation_id\":\"gen-2\",\"confidence\":0.5,\"sources_used\":1}")))

	events := p.Flush()
	require.Len(t, events, 1)
	assert.Equal(t, stream.DoneEvent{GenerationID: "gen-2", Confidence: 0.5, SourcesUsed: 1}, events[0])

	// Flushing again yields nothing.
	assert.Empty(t, p.Flush())
}

func TestFrameParser_FlushOnEmptyBuffer(t *testing.T) {
	p := stream.NewFrameParser()
	assert.Empty(t, p.Flush())

	p.Feed([]byte("data: {\"type\":\"token\",\"content\":\"x\"}\n\n"))
	assert.Empty(t, p.Flush(), "a fully consumed buffer has nothing to flush")
}
