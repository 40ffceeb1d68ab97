package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PredictionsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "predictions_submitted_total",
			Help: "Total number of predictions created or updated",
		},
	)
	PredictionsScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_scored_total",
			Help: "Predictions scored after a match finished, by outcome type",
		},
		[]string{"type"},
	)
	LeaderboardBuildDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leaderboard_build_duration_seconds",
			Help:    "Time spent loading and ranking a leaderboard",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"scope"},
	)
	ResultSyncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_sync_runs_total",
			Help: "Result feed sync runs by status",
		},
		[]string{"status"},
	)
)

// Register adds the domain collectors to the default registry. Call once from main.
func Register() {
	prometheus.MustRegister(PredictionsSubmitted)
	prometheus.MustRegister(PredictionsScored)
	prometheus.MustRegister(LeaderboardBuildDuration)
	prometheus.MustRegister(ResultSyncRuns)
}
