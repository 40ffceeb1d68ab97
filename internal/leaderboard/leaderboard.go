package leaderboard

import (
	"time"

	"kickoffAPI/internal/scoring"

	"github.com/google/uuid"
)

type LeaderboardEntry struct {
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Username        string    `json:"username" db:"username"`
	ImageURL        *string   `json:"image_url" db:"image_url"`
	Points          int       `json:"points"`
	ExactHits       int       `json:"exact_hits"`
	CorrectOutcomes int       `json:"correct_outcomes"`
	Rank            int       `json:"rank"`
}

type Leaderboard struct {
	Entries      []*LeaderboardEntry `json:"entries"`
	UserPosition *LeaderboardEntry   `json:"user_position"`
	TotalUsers   int                 `json:"total_users"`
}

// Participant is one ranked user together with every prediction they made.
type Participant struct {
	UserID      uuid.UUID
	Username    string
	ImageURL    *string
	CreatedAt   time.Time
	Predictions []scoring.ScoredPrediction
}

// Build scores and ranks participants. Only the first limit entries are
// returned (limit <= 0 keeps all), but the viewer's own entry is always
// reported in UserPosition.
func Build(participants []Participant, viewer uuid.UUID, limit int) *Leaderboard {
	byID := make(map[string]*Participant, len(participants))
	entries := make([]scoring.Entry, 0, len(participants))

	for i := range participants {
		p := &participants[i]
		id := p.UserID.String()
		byID[id] = p
		entries = append(entries, scoring.Entry{
			UserID:    id,
			Summary:   scoring.Aggregate(p.Predictions),
			CreatedAt: p.CreatedAt,
		})
	}

	ranked := scoring.Rank(entries)

	board := &Leaderboard{
		Entries:    make([]*LeaderboardEntry, 0, len(ranked)),
		TotalUsers: len(ranked),
	}

	for _, r := range ranked {
		p := byID[r.UserID]
		entry := &LeaderboardEntry{
			UserID:          p.UserID,
			Username:        p.Username,
			ImageURL:        p.ImageURL,
			Points:          r.Points,
			ExactHits:       r.ExactHits,
			CorrectOutcomes: r.CorrectOutcomes,
			Rank:            r.Position,
		}

		if limit <= 0 || len(board.Entries) < limit {
			board.Entries = append(board.Entries, entry)
		}
		if p.UserID == viewer {
			board.UserPosition = entry
		}
	}

	return board
}
