package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "draftgen/backend/internal/errors"
	"draftgen/backend/internal/interfaces"
	"draftgen/backend/internal/model"
)

// GenerationHandler handles HTTP requests for knowledge-base generations.
type GenerationHandler struct {
	service interfaces.GenerationService
}

func NewGenerationHandler(svc interfaces.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: svc}
}

// HandleStreamGeneration godoc
// @Summary      Start a generation and stream its events
// @Description  Starts a knowledge-base generation and relays token, citation, status, done and error events as they arrive. This is a streaming endpoint; the connection stays open until the generation reaches a terminal state.
// @Tags         Generations
// @Accept       json
// @Produce      text/event-stream
// @Param        generationRequest  body  model.GenerationRequest  true  "Generation Request"
// @Success      200  {object}  model.StreamUpdate "Stream of generation updates"
// @Failure      400  {object}  ErrorResponse "Sent as a stream error event"
// @Router       /v1/generations/stream [post]
func (h *GenerationHandler) HandleStreamGeneration(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var req model.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Error decoding generation request body", "error", err)
		sendStreamError(w, "Invalid request body")
		return
	}
	if err := validateRequest(&req); err != nil {
		sendStreamError(w, err.Error())
		return
	}

	updates := make(chan model.StreamUpdate)
	go h.service.Stream(r.Context(), &req, updates)

	for upd := range updates {
		if r.Context().Err() != nil {
			slog.Info("Client disconnected during generation stream.")
			break
		}
		if err := writeStreamEvent(w, upd); err != nil {
			slog.Warn("Could not write to generation stream, client likely disconnected.", "error", err)
			break
		}
	}

	slog.Info("Finished streaming generation.", "knowledge_base_id", req.KnowledgeBaseID)
}

// HandleListGenerations godoc
// @Summary      List stored generations
// @Description  Gets the stored generations for one knowledge base, newest first.
// @Tags         Generations
// @Produce      json
// @Param        knowledge_base_id  query  string  true  "Knowledge base ID"
// @Success      200  {array}   model.Generation
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/generations [get]
func (h *GenerationHandler) HandleListGenerations(w http.ResponseWriter, r *http.Request) {
	kbID := r.URL.Query().Get("knowledge_base_id")
	if kbID == "" {
		respondWithError(w, fmt.Errorf("%w: query parameter 'knowledge_base_id' is required", app_errors.ErrValidation))
		return
	}
	generations, err := h.service.List(r.Context(), kbID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if generations == nil {
		generations = []*model.Generation{}
	}
	respondWithJSON(w, http.StatusOK, generations)
}

// HandleGetGeneration godoc
// @Summary      Get a stored generation
// @Description  Retrieves one stored generation with its citations.
// @Tags         Generations
// @Produce      json
// @Param        generationID  path  string  true  "Generation ID"
// @Success      200  {object}  model.Generation
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/generations/{generationID} [get]
func (h *GenerationHandler) HandleGetGeneration(w http.ResponseWriter, r *http.Request) {
	generationID := chi.URLParam(r, "generationID")
	gen, err := h.service.Get(r.Context(), generationID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, gen)
}

// HandleDeleteGeneration godoc
// @Summary      Delete a stored generation
// @Description  Deletes one stored generation and its citations.
// @Tags         Generations
// @Produce      json
// @Param        generationID  path  string  true  "Generation ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/generations/{generationID} [delete]
func (h *GenerationHandler) HandleDeleteGeneration(w http.ResponseWriter, r *http.Request) {
	generationID := chi.URLParam(r, "generationID")
	if err := h.service.Delete(r.Context(), generationID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
