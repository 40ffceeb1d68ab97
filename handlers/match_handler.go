package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"kickoffAPI/internal/match"
	"kickoffAPI/internal/scoring"
	"kickoffAPI/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// GET /api/v1/matches?status=scheduled
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := r.URL.Query().Get("status")
	if status != "" && !scoring.MatchStatus(status).Valid() {
		respondWithError(w, http.StatusBadRequest, "Unknown match status")
		return
	}

	matches, err := h.matchService.ListMatches(ctx, status)
	if err != nil {
		respondWithServiceError(w, err, "Failed to list matches")
		return
	}

	respondWithJSON(w, http.StatusOK, matches)
}

// GET /api/v1/matches/{id}
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	matchID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	m, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to get match")
		return
	}

	respondWithJSON(w, http.StatusOK, m)
}

// POST /api/v1/admin/matches
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req match.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.HomeTeam = strings.TrimSpace(req.HomeTeam)
	req.AwayTeam = strings.TrimSpace(req.AwayTeam)
	if req.HomeTeam == "" || req.AwayTeam == "" || req.KickoffAt.IsZero() {
		respondWithError(w, http.StatusBadRequest, "home_team, away_team and kickoff_at are required")
		return
	}

	m, err := h.matchService.CreateMatch(ctx, &req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to create match")
		return
	}

	respondWithJSON(w, http.StatusCreated, m)
}

// PUT /api/v1/admin/matches/{id}/result
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	matchID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	var req match.RecordResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.matchService.RecordResult(ctx, matchID, &req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to record result")
		return
	}

	respondWithJSON(w, http.StatusOK, m)
}
