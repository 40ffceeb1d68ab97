package resultsync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `{
	"matches": [
		{
			"id": 537327,
			"utcDate": "2026-06-11T19:00:00Z",
			"status": "FINISHED",
			"homeTeam": {"name": "Mexico", "shortName": "Mexico"},
			"awayTeam": {"name": "South Africa", "shortName": "South Africa"},
			"score": {"fullTime": {"home": 2, "away": 1}}
		},
		{
			"id": 537328,
			"utcDate": "2026-06-11T22:00:00Z",
			"status": "IN_PLAY",
			"homeTeam": {"name": "Korea Republic"},
			"awayTeam": {"name": "Czechia"},
			"score": {"fullTime": {"home": null, "away": null}}
		}
	]
}`

func TestClientFinishedMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/matches", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Auth-Token"))
		assert.Equal(t, "FINISHED", r.URL.Query().Get("status"))
		assert.Equal(t, "2026-06-10", r.URL.Query().Get("dateFrom"))
		assert.Equal(t, "2026-06-12", r.URL.Query().Get("dateTo"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/v4", "secret")
	from := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	matches, err := client.FinishedMatches(context.Background(), from, from.Add(48*time.Hour))
	require.NoError(t, err)
	require.Len(t, matches, 2)

	home, away, ok := matches[0].Final()
	assert.True(t, ok)
	assert.Equal(t, 2, home)
	assert.Equal(t, 1, away)

	_, _, ok = matches[1].Final()
	assert.False(t, ok)
}

func TestClientFinishedMatches_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.FinishedMatches(context.Background(), time.Now(), time.Now())
	assert.ErrorContains(t, err, "429")
}
