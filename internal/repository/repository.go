package repository

import (
	"context"

	"draftgen/backend/internal/model"
)

// GenerationStore defines the interface for persisting terminal generations.
// This interface makes it easy to switch database implementations.
type GenerationStore interface {
	SaveGeneration(ctx context.Context, gen *model.Generation) error
	GetGeneration(ctx context.Context, generationID string) (*model.Generation, error)
	ListGenerations(ctx context.Context, knowledgeBaseID string) ([]*model.Generation, error)
	DeleteGeneration(ctx context.Context, generationID string) error
}
