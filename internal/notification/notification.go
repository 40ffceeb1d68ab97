package notification

import (
	"fmt"

	"kickoffAPI/internal/match"
	"kickoffAPI/internal/scoring"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationMatchScored NotificationType = "match_scored"
	NotificationTest        NotificationType = "test"
)

type DeviceToken struct {
	Token    string `json:"token" db:"token"`
	Platform string `json:"platform" db:"platform"`
}

type Notification struct {
	UserID uuid.UUID        `json:"user_id"`
	Type   NotificationType `json:"type"`
	Title  string           `json:"title"`
	Body   string           `json:"body"`
	Data   map[string]any   `json:"data"`
}

// MatchScored builds the push sent to a user once their prediction on m has
// been scored.
func MatchScored(userID uuid.UUID, m *match.Match, p scoring.Prediction, o scoring.Outcome) *Notification {
	title := fmt.Sprintf("%s %d-%d %s", m.HomeTeam, derefScore(m.HomeScore), derefScore(m.AwayScore), m.AwayTeam)

	var body string
	switch o.Type {
	case scoring.OutcomeExact:
		body = fmt.Sprintf("Exact score! You called %d-%d. +%d points", p.HomeGoals, p.AwayGoals, o.Points)
	case scoring.OutcomeCorrect:
		body = fmt.Sprintf("Right result with %d-%d. +%d point", p.HomeGoals, p.AwayGoals, o.Points)
	default:
		body = fmt.Sprintf("Your %d-%d missed this time.", p.HomeGoals, p.AwayGoals)
	}

	return &Notification{
		UserID: userID,
		Type:   NotificationMatchScored,
		Title:  title,
		Body:   body,
		Data: map[string]any{
			"match_id": m.ID.String(),
			"points":   o.Points,
			"outcome":  string(o.Type),
		},
	}
}

func derefScore(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
