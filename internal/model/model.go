package model

import (
	"time"
)

// Generation statuses as stored and as surfaced over the stream.
const (
	StatusComplete  = "Complete"
	StatusCancelled = "Cancelled"
	StatusFailed    = "Failed"
)

// Citation is a structured reference to a source excerpt that supports
// generated content. Citations are unique by Number within one generation.
type Citation struct {
	Number        int     `json:"number"`
	DocumentID    string  `json:"document_id"`
	DocumentName  string  `json:"document_name"`
	PageNumber    int     `json:"page_number"`
	SectionHeader string  `json:"section_header"`
	Excerpt       string  `json:"excerpt"`
	CharStart     int     `json:"char_start"`
	CharEnd       int     `json:"char_end"`
	Confidence    float64 `json:"confidence"`
}

// GenerationRequest describes one generation task sent to the upstream
// knowledge-base service. The ID is assigned client-side so the generation
// can still be polled if the live stream is lost before completion.
type GenerationRequest struct {
	GenerationID    string   `json:"generation_id,omitempty"`
	KnowledgeBaseID string   `json:"knowledge_base_id" validate:"required"`
	Mode            string   `json:"mode" validate:"required,oneof=draft summary answer"`
	Instructions    string   `json:"instructions,omitempty" validate:"max=4000"`
	SourceChunkIDs  []string `json:"source_chunk_ids,omitempty"`
}

// Generation stores the terminal outcome of one generation session.
type Generation struct {
	ID              string     `json:"id"`
	KnowledgeBaseID string     `json:"knowledge_base_id"`
	Mode            string     `json:"mode"`
	Instructions    string     `json:"instructions,omitempty"`
	Content         string     `json:"content"`
	Status          string     `json:"status"`
	Confidence      *float64   `json:"confidence,omitempty"`
	SourcesUsed     *int       `json:"sources_used,omitempty"`
	Error           *string    `json:"error,omitempty"`
	Citations       []Citation `json:"citations,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// StreamUpdate is the structure for a single chunk in a streaming response.
// Exactly one variant is populated, discriminated by Type.
type StreamUpdate struct {
	Type         string    `json:"type"`
	Content      string    `json:"content,omitempty"`
	Citation     *Citation `json:"citation,omitempty"`
	Status       string    `json:"status,omitempty"`
	GenerationID string    `json:"generation_id,omitempty"`
	Confidence   *float64  `json:"confidence,omitempty"`
	SourcesUsed  *int      `json:"sources_used,omitempty"`
	Error        string    `json:"error,omitempty"`
	Done         bool      `json:"done,omitempty"`
}
