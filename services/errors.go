package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchStarted      = errors.New("match already started")
	ErrInvalidPrediction = errors.New("goals must be non-negative")
	ErrInvalidResult     = errors.New("invalid match result")
	ErrLeagueNotFound    = errors.New("league not found")
	ErrNotLeagueMember   = errors.New("not a member of this league")
	ErrOwnerCannotLeave  = errors.New("league owner cannot leave their own league")
	ErrInvalidLeagueName = errors.New("league name must be between 3 and 50 characters")
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func userIDByClerkID(ctx context.Context, q querier, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrUserNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userID, nil
}
