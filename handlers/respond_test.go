package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kickoffAPI/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrInvalidPrediction, http.StatusBadRequest},
		{fmt.Errorf("%w: finished match needs both scores", services.ErrInvalidResult), http.StatusBadRequest},
		{services.ErrInvalidLeagueName, http.StatusBadRequest},
		{services.ErrMatchStarted, http.StatusConflict},
		{services.ErrOwnerCannotLeave, http.StatusConflict},
		{services.ErrUserNotFound, http.StatusNotFound},
		{services.ErrMatchNotFound, http.StatusNotFound},
		{services.ErrLeagueNotFound, http.StatusNotFound},
		{services.ErrNotLeagueMember, http.StatusForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestRespondWithServiceError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithServiceError(rec, errors.New("pq: password authentication failed"), "Failed to list matches")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to list matches", decodeError(t, rec))
}

func TestRespondWithServiceError_PassesSentinelText(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithServiceError(rec, services.ErrMatchStarted, "Failed to submit prediction")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, services.ErrMatchStarted.Error(), decodeError(t, rec))
}
