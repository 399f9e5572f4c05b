package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	app_errors "draftgen/backend/internal/errors"
	"draftgen/backend/internal/model"
)

// State is the accumulated result of one generation session. Content is
// append-only; Citations keep arrival order with in-place replacement on a
// repeated number. A copy is returned by Snapshot, never the live struct.
type State struct {
	Content      string
	Citations    []model.Citation
	Status       string
	Confidence   *float64
	GenerationID string
	SourcesUsed  *int
	Error        string
	IsGenerating bool
	LastEventID  string
}

// Controller owns the lifecycle of one streaming generation at a time.
// Starting a new generation supersedes any in-flight one: the old stream's
// context is cancelled and its epoch invalidated, so late events from it can
// never touch the state again. All state mutation is epoch-checked.
//
// Transport failures are returned to the caller, who decides whether to
// retry (via the reconnect package) and with which resumption marker.
// Protocol and application errors are terminal states, not returned errors.
type Controller struct {
	source Source

	mu     sync.Mutex
	epoch  int
	cancel context.CancelFunc
	state  State
}

func NewController(source Source) *Controller {
	return &Controller{source: source}
}

// Start begins a fresh generation. Any prior stream is superseded and all
// accumulated state is reset before the request is issued. Updates for each
// applied event are sent on the provided channel; the channel is owned by
// the caller and is not closed here, so a caller can keep it across Resume
// attempts.
//
// The returned error is non-nil only for transport failures. A non-success
// HTTP response or an upstream error event lands in the state as a terminal
// Errored outcome with a nil return.
func (c *Controller) Start(ctx context.Context, req *model.GenerationRequest, updates chan<- model.StreamUpdate) error {
	return c.run(ctx, req, updates, true)
}

// Resume re-opens the stream for the generation already in progress, keeping
// the accumulated state and forwarding the recorded Last-Event-ID so the
// server can skip events that were already delivered.
func (c *Controller) Resume(ctx context.Context, req *model.GenerationRequest, updates chan<- model.StreamUpdate) error {
	return c.run(ctx, req, updates, false)
}

func (c *Controller) run(ctx context.Context, req *model.GenerationRequest, updates chan<- model.StreamUpdate, reset bool) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	streamCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.epoch++
	epoch := c.epoch
	if reset {
		c.state = State{}
	}
	c.state.Error = ""
	c.state.IsGenerating = true
	lastEventID := c.state.LastEventID
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		if epoch == c.epoch {
			c.cancel = nil
		}
		c.mu.Unlock()
	}()

	body, err := c.source.OpenStream(streamCtx, req, lastEventID)
	if err != nil {
		var perr *app_errors.ProtocolError
		if errors.As(err, &perr) {
			// Terminal: surfaced as an Errored state, never retried here.
			if upd, ok := c.fail(epoch, perr.Message); ok {
				c.send(streamCtx, updates, upd)
			}
			return nil
		}
		if streamCtx.Err() != nil {
			return nil
		}
		return err
	}
	defer body.Close()

	parser := NewFrameParser()
	buf := make([]byte, 4096)
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			for _, ev := range parser.Feed(buf[:n]) {
				upd, terminal, ok := c.apply(epoch, ev, parser.LastEventID())
				if !ok {
					return nil // superseded
				}
				if !c.send(streamCtx, updates, upd) {
					return nil
				}
				if terminal {
					return nil
				}
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				for _, ev := range parser.Flush() {
					upd, _, ok := c.apply(epoch, ev, parser.LastEventID())
					if ok {
						c.send(streamCtx, updates, upd)
					}
				}
				return nil
			}
			if streamCtx.Err() != nil {
				return nil // cancelled or superseded, not a failure
			}
			return fmt.Errorf("%w: reading stream: %v", app_errors.ErrUpstreamUnavailable, rerr)
		}
	}
}

// Cancel aborts the active stream, if any. It is idempotent: with no active
// generation it is a no-op. Events already in flight from the aborted stream
// are discarded by the epoch bump.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsGenerating {
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.epoch++
	c.state.IsGenerating = false
	c.state.Status = model.StatusCancelled
}

// Reset clears all accumulated fields back to their defaults. It does not
// touch an active network call; callers are expected to Cancel first.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{}
}

// Snapshot returns a copy of the current generation state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	if len(c.state.Citations) > 0 {
		s.Citations = make([]model.Citation, len(c.state.Citations))
		copy(s.Citations, c.state.Citations)
	}
	return s
}

// apply mutates the state for one event, guarded by the stream's epoch. A
// stale epoch means the stream was superseded or cancelled; nothing happens
// and ok is false.
func (c *Controller) apply(epoch int, ev Event, lastEventID string) (upd model.StreamUpdate, terminal, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return model.StreamUpdate{}, false, false
	}
	if lastEventID != "" {
		c.state.LastEventID = lastEventID
	}

	switch e := ev.(type) {
	case TokenEvent:
		c.state.Content += e.Content
		return model.StreamUpdate{Type: "token", Content: e.Content}, false, true

	case CitationEvent:
		c.upsertCitationLocked(e.Citation)
		cit := e.Citation
		return model.StreamUpdate{Type: "citation", Citation: &cit}, false, true

	case StatusEvent:
		c.state.Status = e.Message
		return model.StreamUpdate{Type: "status", Status: e.Message}, false, true

	case DoneEvent:
		conf := e.Confidence
		used := e.SourcesUsed
		c.state.GenerationID = e.GenerationID
		c.state.Confidence = &conf
		c.state.SourcesUsed = &used
		c.state.Status = model.StatusComplete
		c.state.IsGenerating = false
		return model.StreamUpdate{
			Type:         "done",
			GenerationID: e.GenerationID,
			Confidence:   &conf,
			SourcesUsed:  &used,
			Done:         true,
		}, true, true

	case ErrorEvent:
		c.state.Error = e.Message
		c.state.IsGenerating = false
		return model.StreamUpdate{Type: "error", Error: e.Message, Done: true}, true, true
	}
	return model.StreamUpdate{}, false, false
}

// fail records a terminal Errored outcome, epoch-guarded like any event.
func (c *Controller) fail(epoch int, message string) (model.StreamUpdate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return model.StreamUpdate{}, false
	}
	c.state.Error = message
	c.state.IsGenerating = false
	return model.StreamUpdate{Type: "error", Error: message, Done: true}, true
}

// upsertCitationLocked replaces the payload of an already-seen citation
// number in place, or appends a new one. Positions are preserved.
func (c *Controller) upsertCitationLocked(cit model.Citation) {
	for i := range c.state.Citations {
		if c.state.Citations[i].Number == cit.Number {
			c.state.Citations[i] = cit
			return
		}
	}
	c.state.Citations = append(c.state.Citations, cit)
}

// send forwards an update unless the stream has been cancelled meanwhile.
func (c *Controller) send(ctx context.Context, updates chan<- model.StreamUpdate, upd model.StreamUpdate) bool {
	select {
	case updates <- upd:
		return true
	case <-ctx.Done():
		return false
	}
}
