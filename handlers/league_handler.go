package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"kickoffAPI/internal/league"
	"kickoffAPI/middleware"
	"kickoffAPI/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type LeagueHandler struct {
	leagueService *services.LeagueService
}

func NewLeagueHandler(leagueService *services.LeagueService) *LeagueHandler {
	return &LeagueHandler{
		leagueService: leagueService,
	}
}

// POST /api/v1/leagues
func (h *LeagueHandler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req league.CreateLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	l, err := h.leagueService.CreateLeague(ctx, clerkID, &req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to create league")
		return
	}

	respondWithJSON(w, http.StatusCreated, l)
}

// GET /api/v1/leagues
func (h *LeagueHandler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	leagues, err := h.leagueService.ListUserLeagues(ctx, clerkID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to list leagues")
		return
	}

	respondWithJSON(w, http.StatusOK, leagues)
}

// POST /api/v1/leagues/join
func (h *LeagueHandler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req league.JoinLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.InviteCode == "" {
		respondWithError(w, http.StatusBadRequest, "invite_code is required")
		return
	}

	l, err := h.leagueService.JoinLeague(ctx, clerkID, req.InviteCode)
	if err != nil {
		respondWithServiceError(w, err, "Failed to join league")
		return
	}

	respondWithJSON(w, http.StatusOK, l)
}

// DELETE /api/v1/leagues/{id}/membership
func (h *LeagueHandler) LeaveLeague(w http.ResponseWriter, r *http.Request) {
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

	if err := h.leagueService.LeaveLeague(ctx, clerkID, leagueID); err != nil {
		respondWithServiceError(w, err, "Failed to leave league")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Left league"})
}

// GET /api/v1/leagues/{id}/invite
func (h *LeagueHandler) GetInvite(w http.ResponseWriter, r *http.Request) {
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

	invite, err := h.leagueService.GetInvite(ctx, clerkID, leagueID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to generate invite")
		return
	}

	respondWithJSON(w, http.StatusOK, invite)
}
