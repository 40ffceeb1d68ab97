package scoring

type MatchStatus string

const (
	StatusScheduled  MatchStatus = "scheduled"
	StatusInProgress MatchStatus = "in_progress"
	StatusFinished   MatchStatus = "finished"
	StatusPostponed  MatchStatus = "postponed"
	StatusCancelled  MatchStatus = "cancelled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusFinished, StatusPostponed, StatusCancelled:
		return true
	}
	return false
}

// Match carries only what scoring needs from a fixture. Scores stay nil
// until a result has been recorded.
type Match struct {
	Status    MatchStatus `json:"status"`
	HomeScore *int        `json:"home_score"`
	AwayScore *int        `json:"away_score"`
}

// IsScorable reports whether predictions on m may be scored: the match must
// be finished and carry both scores.
func IsScorable(m Match) bool {
	return m.Status == StatusFinished && m.HomeScore != nil && m.AwayScore != nil
}

func (m Match) Result() (MatchResult, bool) {
	if !IsScorable(m) {
		return MatchResult{}, false
	}
	return MatchResult{HomeScore: *m.HomeScore, AwayScore: *m.AwayScore}, true
}

type ScoredPrediction struct {
	Prediction Prediction
	Match      Match
}

type Summary struct {
	Points          int `json:"points"`
	ExactHits       int `json:"exact_hits"`
	CorrectOutcomes int `json:"correct_outcomes"`
}

func (s *Summary) Add(o Outcome) {
	s.Points += o.Points
	switch o.Type {
	case OutcomeExact:
		s.ExactHits++
	case OutcomeCorrect:
		s.CorrectOutcomes++
	}
}

// Aggregate folds a user's predictions into a Summary. Pairs whose match is
// not scorable contribute nothing.
func Aggregate(pairs []ScoredPrediction) Summary {
	var summary Summary
	for _, pair := range pairs {
		result, ok := pair.Match.Result()
		if !ok {
			continue
		}
		summary.Add(Score(pair.Prediction, result))
	}
	return summary
}
