package services

import (
	"testing"

	"kickoffAPI/internal/match"
	"kickoffAPI/internal/prediction"
	"kickoffAPI/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func withMatch(home, away int, status scoring.MatchStatus, homeScore, awayScore *int) *prediction.WithMatch {
	m := match.Match{Status: status, HomeScore: homeScore, AwayScore: awayScore}
	p := &prediction.WithMatch{
		Prediction: prediction.Prediction{HomeGoals: home, AwayGoals: away},
		Match:      m,
	}
	if r, ok := m.Scoring().Result(); ok {
		o := scoring.Score(p.Scoring(), r)
		p.Outcome = &o
	}
	return p
}

func TestSummarize(t *testing.T) {
	predictions := []*prediction.WithMatch{
		withMatch(2, 1, scoring.StatusFinished, intPtr(2), intPtr(1)),
		withMatch(1, 0, scoring.StatusFinished, intPtr(3), intPtr(1)),
		withMatch(0, 0, scoring.StatusFinished, intPtr(1), intPtr(2)),
		withMatch(1, 1, scoring.StatusScheduled, nil, nil),
	}

	summary := summarize(predictions)

	assert.Equal(t, 4, summary.Points)
	assert.Equal(t, 1, summary.ExactHits)
	assert.Equal(t, 1, summary.CorrectOutcomes)
	assert.Equal(t, 4, summary.Predictions)
	assert.Equal(t, 3, summary.Scored)
}

func TestSummarize_Empty(t *testing.T) {
	summary := summarize(nil)

	assert.Zero(t, summary.Points)
	assert.Zero(t, summary.Predictions)
	assert.Zero(t, summary.Scored)
}
