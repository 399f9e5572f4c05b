package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	app_errors "draftgen/backend/internal/errors"
	"draftgen/backend/internal/model"
)

// Source is the transport contract the streaming layer needs from the
// generation upstream: a live incremental body for a generation request, and
// a point-in-time fetch of a generation's current state for polling.
type Source interface {
	OpenStream(ctx context.Context, req *model.GenerationRequest, lastEventID string) (io.ReadCloser, error)
	FetchGeneration(ctx context.Context, generationID string) (*model.Generation, error)
}

type httpSource struct {
	client *http.Client
	url    string
}

// NewClient returns a Source backed by the knowledge-base generation API at
// the given base URL.
func NewClient(url string) Source {
	return &httpSource{
		client: &http.Client{},
		url:    url,
	}
}

// upstreamError is the error payload shape the upstream returns on non-2xx.
type upstreamError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// OpenStream issues the generation request and hands back the live response
// body. A non-success status is parsed for an error payload and returned as
// a *errors.ProtocolError; any failure to send the request at all is wrapped
// in ErrUpstreamUnavailable so callers can tell the two classes apart.
func (s *httpSource) OpenStream(ctx context.Context, req *model.GenerationRequest, lastEventID string) (io.ReadCloser, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/api/generate", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if lastEventID != "" {
		// Resumption marker: the server may skip events already delivered.
		httpReq.Header.Set("Last-Event-ID", lastEventID)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		var ue upstreamError
		msg := ""
		if err := json.Unmarshal(bodyBytes, &ue); err == nil {
			msg = ue.Error
			if msg == "" {
				msg = ue.Message
			}
		}
		if msg == "" {
			msg = string(bytes.TrimSpace(bodyBytes))
		}
		return nil, &app_errors.ProtocolError{StatusCode: resp.StatusCode, Message: msg}
	}

	return resp.Body, nil
}

// FetchGeneration retrieves the current state of a generation. This is the
// degraded-mode poll target used once the live stream cannot be kept alive.
func (s *httpSource) FetchGeneration(ctx context.Context, generationID string) (*model.Generation, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url+"/api/generations/"+generationID, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &app_errors.ProtocolError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(bodyBytes))}
	}

	var gen model.Generation
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return nil, fmt.Errorf("could not decode generation: %w", err)
	}
	return &gen, nil
}
