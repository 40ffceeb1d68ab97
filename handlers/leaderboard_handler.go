package handlers

import (
	"context"
	"net/http"
	"time"

	"kickoffAPI/middleware"
	"kickoffAPI/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// GET /api/v1/leaderboard
func (h *LeaderboardHandler) GetGlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	board, err := h.leaderboardService.GetGlobalLeaderboard(ctx, clerkID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to build leaderboard")
		return
	}

	respondWithJSON(w, http.StatusOK, board)
}

// GET /api/v1/leagues/{id}/leaderboard
func (h *LeaderboardHandler) GetLeagueLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	leagueID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid league ID")
		return
	}

	board, err := h.leaderboardService.GetLeagueLeaderboard(ctx, clerkID, leagueID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to build leaderboard")
		return
	}

	respondWithJSON(w, http.StatusOK, board)
}
