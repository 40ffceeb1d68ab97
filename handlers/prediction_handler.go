package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"kickoffAPI/internal/prediction"
	"kickoffAPI/middleware"
	"kickoffAPI/services"
)

type PredictionHandler struct {
	predictionService *services.PredictionService
}

func NewPredictionHandler(predictionService *services.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
	}
}

// POST /api/v1/predictions
func (h *PredictionHandler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req prediction.SubmitPredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.MatchID == "" {
		respondWithError(w, http.StatusBadRequest, "match_id is required")
		return
	}

	p, err := h.predictionService.SubmitPrediction(ctx, clerkID, &req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to submit prediction")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

// GET /api/v1/predictions
func (h *PredictionHandler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	predictions, err := h.predictionService.ListUserPredictions(ctx, clerkID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to list predictions")
		return
	}

	respondWithJSON(w, http.StatusOK, predictions)
}
