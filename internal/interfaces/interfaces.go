package interfaces

import (
	"context"

	"draftgen/backend/internal/model"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows
// for decoupling (e.g., API layer from Service layer) and easier testing via
// mocking.

// GenerationService defines the contract for generation-related business logic.
type GenerationService interface {
	Stream(ctx context.Context, req *model.GenerationRequest, updates chan<- model.StreamUpdate)
	Get(ctx context.Context, generationID string) (*model.Generation, error)
	List(ctx context.Context, knowledgeBaseID string) ([]*model.Generation, error)
	Delete(ctx context.Context, generationID string) error
}
