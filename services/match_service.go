package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"kickoffAPI/internal/match"
	"kickoffAPI/internal/scoring"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResultListener is told once about every match that becomes scorable.
// Listeners run in the background on their own context.
type ResultListener interface {
	OnMatchScored(ctx context.Context, m *match.Match)
}

type MatchService struct {
	db        *pgxpool.Pool
	listeners []ResultListener
}

func NewMatchService(db *pgxpool.Pool) *MatchService {
	return &MatchService{db: db}
}

func (s *MatchService) AddResultListener(l ResultListener) {
	s.listeners = append(s.listeners, l)
}

const matchColumns = `id, home_team, away_team, COALESCE(stage, ''), kickoff_at, status, home_score, away_score, created_at, updated_at`

const listenerTimeout = 30 * time.Second

// scanMatch reads matchColumns, followed by any extra columns the query returns.
func scanMatch(row pgx.Row, extra ...any) (*match.Match, error) {
	m := &match.Match{}
	dest := []any{
		&m.ID,
		&m.HomeTeam,
		&m.AwayTeam,
		&m.Stage,
		&m.KickoffAt,
		&m.Status,
		&m.HomeScore,
		&m.AwayScore,
		&m.CreatedAt,
		&m.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return m, err
}

func (s *MatchService) ListMatches(ctx context.Context, status string) ([]*match.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches`
	var args []any
	if status != "" {
		if !scoring.MatchStatus(status).Valid() {
			return nil, fmt.Errorf("unknown match status %q", status)
		}
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY kickoff_at ASC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*match.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID uuid.UUID) (*match.Match, error) {
	m, err := scanMatch(s.db.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

func (s *MatchService) CreateMatch(ctx context.Context, req *match.CreateMatchRequest) (*match.Match, error) {
	home := strings.TrimSpace(req.HomeTeam)
	away := strings.TrimSpace(req.AwayTeam)
	if home == "" || away == "" || req.KickoffAt.IsZero() {
		return nil, fmt.Errorf("home_team, away_team and kickoff_at are required")
	}

	query := `
	INSERT INTO matches (id, home_team, away_team, stage, kickoff_at, status, created_at, updated_at)
	VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NOW(), NOW())
	RETURNING ` + matchColumns

	m, err := scanMatch(s.db.QueryRow(ctx, query, uuid.New(), home, away, req.Stage, req.KickoffAt, scoring.StatusScheduled))
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return m, nil
}

// ListPendingResults returns matches that have kicked off but have no final
// result yet.
func (s *MatchService) ListPendingResults(ctx context.Context, now time.Time) ([]*match.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
	WHERE status IN ($1, $2) AND kickoff_at <= $3
	ORDER BY kickoff_at ASC`

	rows, err := s.db.Query(ctx, query, scoring.StatusScheduled, scoring.StatusInProgress, now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending matches: %w", err)
	}
	defer rows.Close()

	var matches []*match.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// ValidateResult checks a status/score update. A finished match needs both
// scores; other states may carry partial live scores.
func ValidateResult(req *match.RecordResultRequest) error {
	if !req.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidResult, req.Status)
	}
	if req.Status == scoring.StatusFinished && (req.HomeScore == nil || req.AwayScore == nil) {
		return fmt.Errorf("%w: finished match needs both scores", ErrInvalidResult)
	}
	if (req.HomeScore != nil && *req.HomeScore < 0) || (req.AwayScore != nil && *req.AwayScore < 0) {
		return fmt.Errorf("%w: scores must be non-negative", ErrInvalidResult)
	}
	return nil
}

func (s *MatchService) RecordResult(ctx context.Context, matchID uuid.UUID, req *match.RecordResultRequest) (*match.Match, error) {
	if err := ValidateResult(req); err != nil {
		return nil, err
	}

	// prev locks the row so concurrent updates see each other's result.
	query := `
	WITH prev AS (
		SELECT status AS prev_status, home_score AS prev_home_score, away_score AS prev_away_score
		FROM matches
		WHERE id = $1
		FOR UPDATE
	)
	UPDATE matches
	SET status = $2, home_score = $3, away_score = $4, updated_at = NOW()
	FROM prev
	WHERE id = $1
	RETURNING ` + matchColumns + `, prev.prev_status, prev.prev_home_score, prev.prev_away_score`

	var prev scoring.Match
	m, err := scanMatch(s.db.QueryRow(ctx, query, matchID, req.Status, req.HomeScore, req.AwayScore),
		&prev.Status, &prev.HomeScore, &prev.AwayScore)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to record result: %w", err)
	}

	log.Printf("RecordResult: %s %v-%v %s is now %s", m.HomeTeam, fmtScore(m.HomeScore), fmtScore(m.AwayScore), m.AwayTeam, m.Status)

	if becameScorable(prev, m.Scoring()) {
		go s.notifyScored(ctx, m)
	} else if scoring.IsScorable(prev) {
		log.Printf("RecordResult: %s was already scored, listeners not notified", m.ID)
	}

	return m, nil
}

// becameScorable is true only for the update that moves a match into a
// scorable state. Repeated or corrected finals leave it false.
func becameScorable(prev, next scoring.Match) bool {
	return !scoring.IsScorable(prev) && scoring.IsScorable(next)
}

// notifyScored runs the listeners detached from the caller's cancellation,
// bounded by listenerTimeout.
func (s *MatchService) notifyScored(ctx context.Context, m *match.Match) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listenerTimeout)
	defer cancel()

	for _, l := range s.listeners {
		l.OnMatchScored(ctx, m)
	}
}

func fmtScore(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
