package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func finished(home, away int) Match {
	return Match{Status: StatusFinished, HomeScore: intPtr(home), AwayScore: intPtr(away)}
}

func TestIsScorable(t *testing.T) {
	tests := []struct {
		name  string
		match Match
		want  bool
	}{
		{"finished with scores", finished(1, 0), true},
		{"finished without scores", Match{Status: StatusFinished}, false},
		{"finished missing away", Match{Status: StatusFinished, HomeScore: intPtr(1)}, false},
		{"finished missing home", Match{Status: StatusFinished, AwayScore: intPtr(1)}, false},
		{"in progress with partial score", Match{Status: StatusInProgress, HomeScore: intPtr(1), AwayScore: intPtr(0)}, false},
		{"scheduled", Match{Status: StatusScheduled}, false},
		{"postponed", Match{Status: StatusPostponed, HomeScore: intPtr(0), AwayScore: intPtr(0)}, false},
		{"cancelled", Match{Status: StatusCancelled}, false},
		{"unknown status", Match{Status: "FINISHED", HomeScore: intPtr(0), AwayScore: intPtr(0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsScorable(tt.match))

			result, ok := tt.match.Result()
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, MatchResult{*tt.match.HomeScore, *tt.match.AwayScore}, result)
			}
		})
	}
}

func TestAggregate_SkipsUnfinishedMatches(t *testing.T) {
	pairs := []ScoredPrediction{
		{Prediction: Prediction{2, 1}, Match: finished(2, 1)},
		{Prediction: Prediction{1, 0}, Match: Match{Status: StatusScheduled}},
		{Prediction: Prediction{0, 0}, Match: finished(1, 1)},
	}

	assert.Equal(t, Summary{Points: 4, ExactHits: 1, CorrectOutcomes: 1}, Aggregate(pairs))
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Aggregate(nil))
	assert.Equal(t, Summary{}, Aggregate([]ScoredPrediction{}))
}

func randomPairs(rng *rand.Rand, n int) []ScoredPrediction {
	statuses := []MatchStatus{StatusScheduled, StatusInProgress, StatusFinished, StatusPostponed, StatusCancelled}

	pairs := make([]ScoredPrediction, n)
	for i := range pairs {
		m := Match{Status: statuses[rng.Intn(len(statuses))]}
		if rng.Intn(4) > 0 {
			m.HomeScore = intPtr(rng.Intn(5))
		}
		if rng.Intn(4) > 0 {
			m.AwayScore = intPtr(rng.Intn(5))
		}
		pairs[i] = ScoredPrediction{
			Prediction: Prediction{rng.Intn(5), rng.Intn(5)},
			Match:      m,
		}
	}
	return pairs
}

func TestAggregate_PointsMatchHitCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		s := Aggregate(randomPairs(rng, rng.Intn(40)))
		require.Equal(t, 3*s.ExactHits+s.CorrectOutcomes, s.Points)
	}
}

func TestAggregate_UnscorablePairsAreIgnored(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		pairs := randomPairs(rng, 30)

		var scorable []ScoredPrediction
		for _, p := range pairs {
			if IsScorable(p.Match) {
				scorable = append(scorable, p)
			}
		}

		require.Equal(t, Aggregate(scorable), Aggregate(pairs))
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 200; i++ {
		pairs := randomPairs(rng, 25)
		want := Aggregate(pairs)

		shuffled := make([]ScoredPrediction, len(pairs))
		copy(shuffled, pairs)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		require.Equal(t, want, Aggregate(shuffled))
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	pairs := []ScoredPrediction{{Prediction: Prediction{1, 0}, Match: finished(1, 0)}}
	before := *pairs[0].Match.HomeScore

	Aggregate(pairs)

	assert.Equal(t, before, *pairs[0].Match.HomeScore)
	assert.Equal(t, Prediction{1, 0}, pairs[0].Prediction)
}
