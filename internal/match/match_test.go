package match

import (
	"testing"
	"time"

	"kickoffAPI/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func TestOpenForPredictions(t *testing.T) {
	kickoff := time.Date(2026, 6, 11, 19, 0, 0, 0, time.UTC)

	m := &Match{Status: scoring.StatusScheduled, KickoffAt: kickoff}
	assert.True(t, m.OpenForPredictions(kickoff.Add(-time.Minute)))
	assert.False(t, m.OpenForPredictions(kickoff))
	assert.False(t, m.OpenForPredictions(kickoff.Add(time.Minute)))

	m.Status = scoring.StatusPostponed
	assert.False(t, m.OpenForPredictions(kickoff.Add(-time.Hour)))
}

func TestScoring(t *testing.T) {
	home, away := 2, 2
	m := &Match{Status: scoring.StatusFinished, HomeScore: &home, AwayScore: &away}

	result, ok := m.Scoring().Result()
	assert.True(t, ok)
	assert.Equal(t, scoring.MatchResult{HomeScore: 2, AwayScore: 2}, result)
}
