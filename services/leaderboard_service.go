package services

import (
	"context"
	"fmt"
	"time"

	"kickoffAPI/internal/leaderboard"
	"kickoffAPI/internal/metrics"
	"kickoffAPI/internal/scoring"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const leaderboardLimit = 50

type LeaderboardService struct {
	db *pgxpool.Pool
}

func NewLeaderboardService(db *pgxpool.Pool) *LeaderboardService {
	return &LeaderboardService{db: db}
}

func (s *LeaderboardService) GetGlobalLeaderboard(ctx context.Context, clerkID string) (*leaderboard.Leaderboard, error) {
	start := time.Now()
	defer func() {
		metrics.LeaderboardBuildDuration.WithLabelValues("global").Observe(time.Since(start).Seconds())
	}()

	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	participants, err := s.loadParticipants(ctx, uuid.Nil)
	if err != nil {
		return nil, err
	}

	return leaderboard.Build(participants, userID, leaderboardLimit), nil
}

func (s *LeaderboardService) GetLeagueLeaderboard(ctx context.Context, clerkID string, leagueID uuid.UUID) (*leaderboard.Leaderboard, error) {
	start := time.Now()
	defer func() {
		metrics.LeaderboardBuildDuration.WithLabelValues("league").Observe(time.Since(start).Seconds())
	}()

	userID, err := ensureMember(ctx, s.db, clerkID, leagueID)
	if err != nil {
		return nil, err
	}

	participants, err := s.loadParticipants(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	return leaderboard.Build(participants, userID, leaderboardLimit), nil
}

type predictionRow struct {
	userID uuid.UUID
	pair   scoring.ScoredPrediction
}

// loadParticipants reads users and their prediction/match rows in parallel.
// A nil leagueID means every registered user.
func (s *LeaderboardService) loadParticipants(ctx context.Context, leagueID uuid.UUID) ([]leaderboard.Participant, error) {
	var (
		participants []leaderboard.Participant
		rows         []predictionRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		participants, err = s.loadUsers(gctx, leagueID)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.loadPredictions(gctx, leagueID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID][]scoring.ScoredPrediction, len(participants))
	for _, r := range rows {
		byUser[r.userID] = append(byUser[r.userID], r.pair)
	}
	for i := range participants {
		participants[i].Predictions = byUser[participants[i].UserID]
	}

	return participants, nil
}

func (s *LeaderboardService) loadUsers(ctx context.Context, leagueID uuid.UUID) ([]leaderboard.Participant, error) {
	query := `SELECT u.id, u.username, u.image_url, u.created_at FROM users u`
	var args []any
	if leagueID != uuid.Nil {
		query += ` JOIN league_members lm ON lm.user_id = u.id WHERE lm.league_id = $1`
		args = append(args, leagueID)
	}

	dbRows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard users: %w", err)
	}
	defer dbRows.Close()

	var participants []leaderboard.Participant
	for dbRows.Next() {
		var p leaderboard.Participant
		if err := dbRows.Scan(&p.UserID, &p.Username, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, dbRows.Err()
}

func (s *LeaderboardService) loadPredictions(ctx context.Context, leagueID uuid.UUID) ([]predictionRow, error) {
	query := `
	SELECT p.user_id, p.home_goals, p.away_goals, m.status, m.home_score, m.away_score
	FROM predictions p
	JOIN matches m ON m.id = p.match_id`
	var args []any
	if leagueID != uuid.Nil {
		query += ` JOIN league_members lm ON lm.user_id = p.user_id WHERE lm.league_id = $1`
		args = append(args, leagueID)
	}

	dbRows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch predictions: %w", err)
	}
	defer dbRows.Close()

	var rows []predictionRow
	for dbRows.Next() {
		var r predictionRow
		err := dbRows.Scan(
			&r.userID,
			&r.pair.Prediction.HomeGoals,
			&r.pair.Prediction.AwayGoals,
			&r.pair.Match.Status,
			&r.pair.Match.HomeScore,
			&r.pair.Match.AwayScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rows = append(rows, r)
	}

	return rows, dbRows.Err()
}
