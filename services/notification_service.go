package services

import (
	"context"
	"fmt"
	"log"

	"kickoffAPI/internal/match"
	"kickoffAPI/internal/metrics"
	"kickoffAPI/internal/notification"
	"kickoffAPI/internal/scoring"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationService struct {
	db         *pgxpool.Pool
	dispatcher *NotificationDispatcher
}

func NewNotificationService(db *pgxpool.Pool, dispatcher *NotificationDispatcher) *NotificationService {
	return &NotificationService{db: db, dispatcher: dispatcher}
}

func (s *NotificationService) RegisterDevice(ctx context.Context, clerkID string, req *notification.RegisterDeviceRequest) error {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO device_tokens (user_id, token, platform, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform, updated_at = NOW()
	`, userID, req.Token, req.Platform)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	return nil
}

// SendTestNotification pushes a fixed message to the caller's devices.
func (s *NotificationService) SendTestNotification(ctx context.Context, clerkID string) error {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	tokens, err := s.deviceTokens(ctx, []uuid.UUID{userID})
	if err != nil {
		return err
	}

	s.dispatcher.Dispatch(&DispatchJob{
		Notification: &notification.Notification{
			UserID: userID,
			Type:   notification.NotificationTest,
			Title:  "Kickoff",
			Body:   "Notifications are working.",
		},
		Tokens: tokens[userID],
	})
	return nil
}

type matchPrediction struct {
	userID uuid.UUID
	pred   scoring.Prediction
}

// OnMatchScored tells every user who predicted m how many points they earned.
func (s *NotificationService) OnMatchScored(ctx context.Context, m *match.Match) {
	result, ok := m.Scoring().Result()
	if !ok {
		return
	}

	rows, err := s.db.Query(ctx, `SELECT user_id, home_goals, away_goals FROM predictions WHERE match_id = $1`, m.ID)
	if err != nil {
		log.Printf("OnMatchScored: failed to load predictions for %s: %v", m.ID, err)
		return
	}

	var preds []matchPrediction
	for rows.Next() {
		var mp matchPrediction
		if err := rows.Scan(&mp.userID, &mp.pred.HomeGoals, &mp.pred.AwayGoals); err != nil {
			log.Printf("OnMatchScored: failed to scan prediction: %v", err)
			continue
		}
		preds = append(preds, mp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		log.Printf("OnMatchScored: failed to read predictions for %s: %v", m.ID, err)
		return
	}

	if len(preds) == 0 {
		return
	}

	userIDs := make([]uuid.UUID, len(preds))
	for i, p := range preds {
		userIDs[i] = p.userID
	}

	tokens, err := s.deviceTokens(ctx, userIDs)
	if err != nil {
		log.Printf("OnMatchScored: %v", err)
		return
	}

	for _, p := range preds {
		outcome := scoring.Score(p.pred, result)
		metrics.PredictionsScored.WithLabelValues(string(outcome.Type)).Inc()

		s.dispatcher.Dispatch(&DispatchJob{
			Notification: notification.MatchScored(p.userID, m, p.pred, outcome),
			Tokens:       tokens[p.userID],
		})
	}

	log.Printf("OnMatchScored: queued %d result notifications for match %s", len(preds), m.ID)
}

func (s *NotificationService) deviceTokens(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx, `SELECT user_id, token, platform FROM device_tokens WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load device tokens: %w", err)
	}
	defer rows.Close()

	tokens := make(map[uuid.UUID][]notification.DeviceToken)
	for rows.Next() {
		var userID uuid.UUID
		var t notification.DeviceToken
		if err := rows.Scan(&userID, &t.Token, &t.Platform); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens[userID] = append(tokens[userID], t)
	}

	return tokens, rows.Err()
}
