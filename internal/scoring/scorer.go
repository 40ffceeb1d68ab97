package scoring

type OutcomeType string

const (
	OutcomeExact   OutcomeType = "exact"
	OutcomeCorrect OutcomeType = "outcome"
	OutcomeMiss    OutcomeType = "miss"
)

const (
	ExactPoints   = 3
	OutcomePoints = 1
)

// Prediction is a user's guessed scoreline for one match.
type Prediction struct {
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
}

// MatchResult is the final scoreline of a finished match.
type MatchResult struct {
	HomeScore int `json:"home_score"`
	AwayScore int `json:"away_score"`
}

type Outcome struct {
	Points int         `json:"points"`
	Type   OutcomeType `json:"type"`
}

type side int

const (
	homeWin side = iota
	awayWin
	draw
)

func classify(home, away int) side {
	switch {
	case home > away:
		return homeWin
	case home < away:
		return awayWin
	default:
		return draw
	}
}

// Score compares a prediction against a final result. An exact scoreline
// always wins over a matching home/away/draw outcome.
func Score(p Prediction, r MatchResult) Outcome {
	if p.HomeGoals == r.HomeScore && p.AwayGoals == r.AwayScore {
		return Outcome{Points: ExactPoints, Type: OutcomeExact}
	}

	if classify(p.HomeGoals, p.AwayGoals) == classify(r.HomeScore, r.AwayScore) {
		return Outcome{Points: OutcomePoints, Type: OutcomeCorrect}
	}

	return Outcome{Points: 0, Type: OutcomeMiss}
}
