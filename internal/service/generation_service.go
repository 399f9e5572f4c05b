package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	app_errors "draftgen/backend/internal/errors"
	"draftgen/backend/internal/model"
	"draftgen/backend/internal/reconnect"
	"draftgen/backend/internal/repository"
	"draftgen/backend/internal/stream"
)

// ReconnectSettings carries the per-deployment resilience tuning for
// generation streams.
type ReconnectSettings struct {
	MaxRetries      int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	PollingInterval time.Duration
}

// GenerationService drives resilient generation sessions: it runs the stream
// controller, hands transport failures to a per-session reconnection
// manager, degrades to polling once the retry budget is spent, and persists
// terminal outcomes.
type GenerationService struct {
	store  repository.GenerationStore
	source stream.Source
	rc     ReconnectSettings
}

func NewGenerationService(store repository.GenerationStore, source stream.Source, rc ReconnectSettings) *GenerationService {
	return &GenerationService{store: store, source: source, rc: rc}
}

// Stream runs one generation session end to end, forwarding every applied
// event on the updates channel. The channel is closed when the session
// reaches a terminal outcome or the context is cancelled.
func (s *GenerationService) Stream(ctx context.Context, req *model.GenerationRequest, updates chan<- model.StreamUpdate) {
	defer close(updates)

	if req.GenerationID == "" {
		// Client-side id so the generation stays pollable even if the live
		// stream never delivers a done event.
		req.GenerationID = uuid.NewString()
	}
	createdAt := time.Now().UTC()

	ctrl := stream.NewController(s.source)
	mgr := reconnect.NewManager(reconnect.Config{
		InitialDelay:    s.rc.InitialDelay,
		MaxDelay:        s.rc.MaxDelay,
		MaxRetries:      s.rc.MaxRetries,
		PollingInterval: s.rc.PollingInterval,
	}, reconnect.Callbacks{
		OnReconnectAttempt: func(attempt int) {
			slog.Info("Reconnecting generation stream", "generation_id", req.GenerationID, "attempt", attempt)
		},
		OnReconnectSuccess: func() {
			slog.Info("Generation stream re-established", "generation_id", req.GenerationID)
		},
	})
	defer mgr.Stop()

	err := ctrl.Start(ctx, req, updates)
	for err != nil {
		if ctx.Err() != nil {
			ctrl.Cancel()
			return
		}
		slog.Warn("Generation stream lost", "generation_id", req.GenerationID, "error", err)

		before := ctrl.Snapshot()
		mgr.SetLastEventID(before.LastEventID)

		retryErr := make(chan error, 1)
		mgr.ScheduleReconnect(func() {
			retryErr <- ctrl.Resume(ctx, req, updates)
		})
		if mgr.State().MaxRetriesExceeded {
			slog.Error("Giving up on the live stream", "generation_id", req.GenerationID, "error", app_errors.ErrMaxRetriesExceeded)
			s.pollUntilTerminal(ctx, mgr, req, updates, createdAt)
			return
		}

		select {
		case err = <-retryErr:
			if err != nil {
				// If the attempt got a connection and made progress before
				// dropping again, the budget starts over.
				after := ctrl.Snapshot()
				if len(after.Content) > len(before.Content) || after.LastEventID != before.LastEventID {
					mgr.OnConnectionSuccess()
				}
			}
		case <-ctx.Done():
			ctrl.Cancel()
			return
		}
	}

	if ctx.Err() != nil {
		ctrl.Cancel()
		return
	}
	s.persistOutcome(ctx, ctrl.Snapshot(), req, createdAt)
}

// pollUntilTerminal is the degraded mode of last resort: the live stream is
// given up and the generation's state is re-fetched every polling interval
// until it reports a terminal status. Failed polls change nothing.
func (s *GenerationService) pollUntilTerminal(ctx context.Context, mgr *reconnect.Manager, req *model.GenerationRequest, updates chan<- model.StreamUpdate, createdAt time.Time) {
	sendUpdate(ctx, updates, model.StreamUpdate{
		Type:   "status",
		Status: "Live stream unavailable; polling for the result",
	})

	terminal := make(chan *model.Generation, 1)
	mgr.EnablePolling(func() error {
		gen, err := s.source.FetchGeneration(ctx, req.GenerationID)
		if err != nil {
			return err
		}
		if gen.Status == model.StatusComplete || gen.Status == model.StatusFailed {
			select {
			case terminal <- gen:
			default:
			}
		}
		return nil
	})
	defer mgr.DisablePolling()

	select {
	case gen := <-terminal:
		gen.CreatedAt = createdAt
		if gen.ID == "" {
			gen.ID = req.GenerationID
		}
		if err := s.store.SaveGeneration(ctx, gen); err != nil {
			slog.Error("Failed to save polled generation", "generation_id", gen.ID, "error", err)
		}
		if gen.Status == model.StatusFailed {
			msg := "generation failed"
			if gen.Error != nil {
				msg = *gen.Error
			}
			sendUpdate(ctx, updates, model.StreamUpdate{Type: "error", Error: msg, Done: true})
			return
		}
		sendUpdate(ctx, updates, model.StreamUpdate{
			Type:         "done",
			GenerationID: gen.ID,
			Confidence:   gen.Confidence,
			SourcesUsed:  gen.SourcesUsed,
			Done:         true,
		})
	case <-ctx.Done():
	}
}

// persistOutcome saves the terminal state of a session. Cancelled sessions
// are not persisted.
func (s *GenerationService) persistOutcome(ctx context.Context, snap stream.State, req *model.GenerationRequest, createdAt time.Time) {
	if snap.Status == model.StatusCancelled || snap.IsGenerating {
		return
	}

	completedAt := time.Now().UTC()
	gen := &model.Generation{
		ID:              snap.GenerationID,
		KnowledgeBaseID: req.KnowledgeBaseID,
		Mode:            req.Mode,
		Instructions:    req.Instructions,
		Content:         snap.Content,
		Citations:       snap.Citations,
		Confidence:      snap.Confidence,
		SourcesUsed:     snap.SourcesUsed,
		CreatedAt:       createdAt,
		CompletedAt:     &completedAt,
	}
	if gen.ID == "" {
		gen.ID = req.GenerationID
	}
	if snap.Error != "" {
		gen.Status = model.StatusFailed
		errMsg := snap.Error
		gen.Error = &errMsg
	} else {
		gen.Status = model.StatusComplete
	}

	if err := s.store.SaveGeneration(ctx, gen); err != nil {
		slog.Error("Failed to save generation", "generation_id", gen.ID, "error", err)
	}
}

// Get retrieves a stored generation with its citations.
func (s *GenerationService) Get(ctx context.Context, generationID string) (*model.Generation, error) {
	gen, err := s.store.GetGeneration(ctx, generationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: generation %s", app_errors.ErrNotFound, generationID)
		}
		return nil, err
	}
	return gen, nil
}

// List retrieves the stored generations for one knowledge base, newest first.
func (s *GenerationService) List(ctx context.Context, knowledgeBaseID string) ([]*model.Generation, error) {
	return s.store.ListGenerations(ctx, knowledgeBaseID)
}

// Delete removes a stored generation.
func (s *GenerationService) Delete(ctx context.Context, generationID string) error {
	slog.Info("Deleting generation", "generation_id", generationID)
	if err := s.store.DeleteGeneration(ctx, generationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: generation %s", app_errors.ErrNotFound, generationID)
		}
		return err
	}
	return nil
}

func sendUpdate(ctx context.Context, updates chan<- model.StreamUpdate, upd model.StreamUpdate) {
	select {
	case updates <- upd:
	case <-ctx.Done():
	}
}
