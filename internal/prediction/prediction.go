package prediction

import (
	"time"

	"kickoffAPI/internal/match"
	"kickoffAPI/internal/scoring"

	"github.com/google/uuid"
)

type Prediction struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	MatchID   uuid.UUID `json:"match_id" db:"match_id"`
	HomeGoals int       `json:"home_goals" db:"home_goals"`
	AwayGoals int       `json:"away_goals" db:"away_goals"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (p *Prediction) Scoring() scoring.Prediction {
	return scoring.Prediction{HomeGoals: p.HomeGoals, AwayGoals: p.AwayGoals}
}

type SubmitPredictionRequest struct {
	MatchID   string `json:"match_id" validate:"required"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
}

// WithMatch is a prediction joined with its match. Outcome is set once the
// match is scorable.
type WithMatch struct {
	Prediction
	Match   match.Match      `json:"match"`
	Outcome *scoring.Outcome `json:"outcome"`
}
