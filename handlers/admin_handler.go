package handlers

import (
	"context"
	"net/http"
	"time"
)

type ResultSyncer interface {
	SyncOnce(ctx context.Context) (int, error)
}

type AdminHandler struct {
	syncer ResultSyncer
}

// NewAdminHandler accepts a nil syncer when no results feed is configured.
func NewAdminHandler(syncer ResultSyncer) *AdminHandler {
	return &AdminHandler{
		syncer: syncer,
	}
}

// POST /api/v1/admin/results/sync
func (h *AdminHandler) SyncResults(w http.ResponseWriter, r *http.Request) {
	if h.syncer == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Results feed is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	updated, err := h.syncer.SyncOnce(ctx)
	if err != nil {
		respondWithServiceError(w, err, "Result sync failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"updated": updated})
}
