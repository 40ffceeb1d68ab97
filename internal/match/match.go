package match

import (
	"time"

	"kickoffAPI/internal/scoring"

	"github.com/google/uuid"
)

type Match struct {
	ID        uuid.UUID           `json:"id" db:"id"`
	HomeTeam  string              `json:"home_team" db:"home_team"`
	AwayTeam  string              `json:"away_team" db:"away_team"`
	Stage     string              `json:"stage" db:"stage"`
	KickoffAt time.Time           `json:"kickoff_at" db:"kickoff_at"`
	Status    scoring.MatchStatus `json:"status" db:"status"`
	HomeScore *int                `json:"home_score" db:"home_score"`
	AwayScore *int                `json:"away_score" db:"away_score"`
	CreatedAt time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" db:"updated_at"`
}

func (m *Match) Scoring() scoring.Match {
	return scoring.Match{Status: m.Status, HomeScore: m.HomeScore, AwayScore: m.AwayScore}
}

// OpenForPredictions is true until kickoff while the match is still scheduled.
func (m *Match) OpenForPredictions(now time.Time) bool {
	return m.Status == scoring.StatusScheduled && now.Before(m.KickoffAt)
}

type CreateMatchRequest struct {
	HomeTeam  string    `json:"home_team" validate:"required"`
	AwayTeam  string    `json:"away_team" validate:"required"`
	Stage     string    `json:"stage,omitempty"`
	KickoffAt time.Time `json:"kickoff_at" validate:"required"`
}

type RecordResultRequest struct {
	Status    scoring.MatchStatus `json:"status"`
	HomeScore *int                `json:"home_score"`
	AwayScore *int                `json:"away_score"`
}
