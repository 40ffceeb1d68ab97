package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kickoffAPI/internal/metrics"
	"kickoffAPI/internal/prediction"
	"kickoffAPI/internal/scoring"
	"kickoffAPI/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PredictionService struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewPredictionService(db *pgxpool.Pool) *PredictionService {
	return &PredictionService{db: db, now: time.Now}
}

// SubmitPrediction creates or replaces the user's prediction for a match. It
// is only accepted while the match is scheduled and before kickoff.
func (s *PredictionService) SubmitPrediction(ctx context.Context, clerkID string, req *prediction.SubmitPredictionRequest) (*prediction.Prediction, error) {
	if req.HomeGoals < 0 || req.AwayGoals < 0 {
		return nil, ErrInvalidPrediction
	}

	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		return nil, ErrMatchNotFound
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	userID, err := userIDByClerkID(ctx, tx, clerkID)
	if err != nil {
		return nil, err
	}

	// FOR SHARE keeps a concurrent result update from slipping in between the
	// kickoff check and the upsert.
	m, err := scanMatch(tx.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR SHARE`, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	if !m.OpenForPredictions(s.now()) {
		return nil, ErrMatchStarted
	}

	query := `
	INSERT INTO predictions (id, user_id, match_id, home_goals, away_goals, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	ON CONFLICT (user_id, match_id)
	DO UPDATE SET home_goals = EXCLUDED.home_goals, away_goals = EXCLUDED.away_goals, updated_at = NOW()
	RETURNING id, user_id, match_id, home_goals, away_goals, created_at, updated_at
	`

	p := &prediction.Prediction{}
	err = tx.QueryRow(ctx, query, uuid.New(), userID, matchID, req.HomeGoals, req.AwayGoals).Scan(
		&p.ID,
		&p.UserID,
		&p.MatchID,
		&p.HomeGoals,
		&p.AwayGoals,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.PredictionsSubmitted.Inc()
	return p, nil
}

func (s *PredictionService) ListUserPredictions(ctx context.Context, clerkID string) ([]*prediction.WithMatch, error) {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT
		p.id, p.user_id, p.match_id, p.home_goals, p.away_goals, p.created_at, p.updated_at,
		m.id, m.home_team, m.away_team, COALESCE(m.stage, ''), m.kickoff_at, m.status,
		m.home_score, m.away_score, m.created_at, m.updated_at
	FROM predictions p
	JOIN matches m ON m.id = p.match_id
	WHERE p.user_id = $1
	ORDER BY m.kickoff_at ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]*prediction.WithMatch, 0)
	for rows.Next() {
		pm := &prediction.WithMatch{}
		err := rows.Scan(
			&pm.ID,
			&pm.UserID,
			&pm.MatchID,
			&pm.HomeGoals,
			&pm.AwayGoals,
			&pm.CreatedAt,
			&pm.UpdatedAt,
			&pm.Match.ID,
			&pm.Match.HomeTeam,
			&pm.Match.AwayTeam,
			&pm.Match.Stage,
			&pm.Match.KickoffAt,
			&pm.Match.Status,
			&pm.Match.HomeScore,
			&pm.Match.AwayScore,
			&pm.Match.CreatedAt,
			&pm.Match.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}

		if result, ok := pm.Match.Scoring().Result(); ok {
			outcome := scoring.Score(pm.Scoring(), result)
			pm.Outcome = &outcome
		}

		predictions = append(predictions, pm)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return predictions, nil
}

func (s *PredictionService) GetUserSummary(ctx context.Context, clerkID string) (*user.SummaryResponse, error) {
	predictions, err := s.ListUserPredictions(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	return summarize(predictions), nil
}

func summarize(predictions []*prediction.WithMatch) *user.SummaryResponse {
	pairs := make([]scoring.ScoredPrediction, 0, len(predictions))
	scored := 0
	for _, p := range predictions {
		pairs = append(pairs, scoring.ScoredPrediction{Prediction: p.Scoring(), Match: p.Match.Scoring()})
		if p.Outcome != nil {
			scored++
		}
	}

	return &user.SummaryResponse{
		Summary:     scoring.Aggregate(pairs),
		Predictions: len(predictions),
		Scored:      scored,
	}
}
