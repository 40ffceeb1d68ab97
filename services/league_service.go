package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"kickoffAPI/internal/league"
	"kickoffAPI/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type LeagueService struct {
	db            *pgxpool.Pool
	inviteBaseURL string
}

func NewLeagueService(db *pgxpool.Pool, inviteBaseURL string) *LeagueService {
	return &LeagueService{db: db, inviteBaseURL: inviteBaseURL}
}

func (s *LeagueService) CreateLeague(ctx context.Context, clerkID string, req *league.CreateLeagueRequest) (*league.League, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 3 || len(name) > 50 {
		return nil, ErrInvalidLeagueName
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ownerID, err := userIDByClerkID(ctx, tx, clerkID)
	if err != nil {
		return nil, err
	}

	l := &league.League{
		ID:          uuid.New(),
		Name:        name,
		OwnerID:     ownerID,
		MemberCount: 1,
	}

	// invite codes are unique; retry the rare collision with a fresh one
	for attempt := 0; ; attempt++ {
		l.InviteCode, err = utils.GenerateInviteCode()
		if err != nil {
			return nil, err
		}

		_, err = tx.Exec(ctx, `SAVEPOINT create_league`)
		if err != nil {
			return nil, fmt.Errorf("failed to create savepoint: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO leagues (id, name, owner_id, invite_code, created_at)
			VALUES ($1, $2, $3, $4, NOW())
			RETURNING created_at
		`, l.ID, l.Name, l.OwnerID, l.InviteCode).Scan(&l.CreatedAt)
		if err == nil {
			break
		}

		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation || attempt >= 3 {
			return nil, fmt.Errorf("failed to create league: %w", err)
		}
		if _, err = tx.Exec(ctx, `ROLLBACK TO SAVEPOINT create_league`); err != nil {
			return nil, fmt.Errorf("failed to roll back savepoint: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO league_members (league_id, user_id, joined_at)
		VALUES ($1, $2, NOW())
	`, l.ID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to add owner to league: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("CreateLeague: %s created league %q (%s)", clerkID, l.Name, l.ID)
	return l, nil
}

// JoinLeague adds the user to the league behind inviteCode. Joining twice is a no-op.
func (s *LeagueService) JoinLeague(ctx context.Context, clerkID string, inviteCode string) (*league.League, error) {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	l := &league.League{}
	err = s.db.QueryRow(ctx, `
		SELECT id, name, owner_id, invite_code, created_at
		FROM leagues
		WHERE invite_code = $1
	`, utils.NormalizeInviteCode(inviteCode)).Scan(&l.ID, &l.Name, &l.OwnerID, &l.InviteCode, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to find league: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO league_members (league_id, user_id, joined_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (league_id, user_id) DO NOTHING
	`, l.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to join league: %w", err)
	}

	err = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM league_members WHERE league_id = $1`, l.ID).Scan(&l.MemberCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	return l, nil
}

func (s *LeagueService) LeaveLeague(ctx context.Context, clerkID string, leagueID uuid.UUID) error {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	var ownerID uuid.UUID
	err = s.db.QueryRow(ctx, `SELECT owner_id FROM leagues WHERE id = $1`, leagueID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrLeagueNotFound
		}
		return fmt.Errorf("failed to get league: %w", err)
	}

	if ownerID == userID {
		return ErrOwnerCannotLeave
	}

	result, err := s.db.Exec(ctx, `DELETE FROM league_members WHERE league_id = $1 AND user_id = $2`, leagueID, userID)
	if err != nil {
		return fmt.Errorf("failed to leave league: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotLeagueMember
	}

	return nil
}

func (s *LeagueService) ListUserLeagues(ctx context.Context, clerkID string) ([]*league.League, error) {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT l.id, l.name, l.owner_id, l.invite_code, l.created_at,
		(SELECT COUNT(*) FROM league_members c WHERE c.league_id = l.id) AS member_count
	FROM leagues l
	JOIN league_members lm ON lm.league_id = l.id
	WHERE lm.user_id = $1
	ORDER BY l.created_at ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leagues: %w", err)
	}
	defer rows.Close()

	leagues := make([]*league.League, 0)
	for rows.Next() {
		l := &league.League{}
		if err := rows.Scan(&l.ID, &l.Name, &l.OwnerID, &l.InviteCode, &l.CreatedAt, &l.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan league: %w", err)
		}
		leagues = append(leagues, l)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return leagues, nil
}

// ensureMember resolves the caller and checks they belong to leagueID.
func ensureMember(ctx context.Context, q querier, clerkID string, leagueID uuid.UUID) (uuid.UUID, error) {
	userID, err := userIDByClerkID(ctx, q, clerkID)
	if err != nil {
		return uuid.Nil, err
	}

	var exists, member bool
	err = q.QueryRow(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM leagues WHERE id = $1),
			EXISTS (SELECT 1 FROM league_members WHERE league_id = $1 AND user_id = $2)
	`, leagueID, userID).Scan(&exists, &member)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if !exists {
		return uuid.Nil, ErrLeagueNotFound
	}
	if !member {
		return uuid.Nil, ErrNotLeagueMember
	}
	return userID, nil
}

func (s *LeagueService) GetInvite(ctx context.Context, clerkID string, leagueID uuid.UUID) (*league.InviteResponse, error) {
	if _, err := ensureMember(ctx, s.db, clerkID, leagueID); err != nil {
		return nil, err
	}

	var code string
	if err := s.db.QueryRow(ctx, `SELECT invite_code FROM leagues WHERE id = $1`, leagueID).Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to get invite code: %w", err)
	}

	inviteURL := s.inviteBaseURL + code
	qr, err := utils.InviteQRCode(inviteURL)
	if err != nil {
		return nil, err
	}

	return &league.InviteResponse{
		LeagueID:     leagueID,
		InviteCode:   code,
		InviteURL:    inviteURL,
		QrCodeBase64: qr,
	}, nil
}
