package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kickoffAPI/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// statusForError maps service sentinel errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidPrediction),
		errors.Is(err, services.ErrInvalidResult),
		errors.Is(err, services.ErrInvalidLeagueName):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrMatchStarted),
		errors.Is(err, services.ErrOwnerCannotLeave):
		return http.StatusConflict
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrLeagueNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotLeagueMember):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError hides internal error text behind a generic message.
func respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		log.Printf("%s: %v", fallback, err)
		respondWithError(w, code, fallback)
		return
	}
	respondWithError(w, code, err.Error())
}
