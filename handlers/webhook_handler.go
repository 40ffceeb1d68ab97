package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kickoffAPI/internal/types/clerk"
	"kickoffAPI/internal/user"
	"kickoffAPI/services"
)

const (
	maxWebhookBodyBytes = int64(65536)
	webhookTolerance    = 5 * time.Minute
)

type WebhookHandler struct {
	userService   *services.UserService
	webhookSecret string
	now           func() time.Time
}

func NewWebhookHandler(userService *services.UserService, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		userService:   userService,
		webhookSecret: webhookSecret,
		now:           time.Now,
	}
}

// POST /webhooks/clerk
func (h *WebhookHandler) HandleClerkWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading webhook body: %v", err)
		respondWithError(w, http.StatusBadRequest, "Error reading body")
		return
	}

	if !h.verifyWebhookSignature(r.Header, body) {
		log.Println("Invalid webhook signature")
		respondWithError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var event clerk.ClerkWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		respondWithError(w, http.StatusBadRequest, "Error parsing webhook")
		return
	}

	log.Printf("Received webhook event: %s", event.Type)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	switch event.Type {
	case "user.created":
		if err := h.handleUserCreated(ctx, event.Data); err != nil {
			log.Printf("Error handling user.created: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Error processing webhook")
			return
		}

	case "user.updated":
		if err := h.handleUserUpdated(ctx, event.Data); err != nil {
			log.Printf("Error handling user.updated: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Error processing webhook")
			return
		}

	case "user.deleted":
		if err := h.handleUserDeleted(ctx, event.Data); err != nil {
			log.Printf("Error handling user.deleted: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Error processing webhook")
			return
		}

	default:
		log.Printf("Unhandled webhook event type: %s", event.Type)
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func displayName(u *clerk.ClerkUserData) string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName + u.LastName
}

func imageURL(u *clerk.ClerkUserData) string {
	if u.ImageURL != "" {
		return u.ImageURL
	}
	return u.ProfileImageURL
}

func (h *WebhookHandler) handleUserCreated(ctx context.Context, data json.RawMessage) error {
	var userData clerk.ClerkUserData
	if err := json.Unmarshal(data, &userData); err != nil {
		return fmt.Errorf("failed to unmarshal user data: %w", err)
	}

	primary, hasEmail := userData.PrimaryEmail()
	createReq := &user.CreateUserRequest{
		ClerkID:   userData.ID,
		Username:  displayName(&userData),
		FirstName: userData.FirstName,
		LastName:  userData.LastName,
		ImageURL:  imageURL(&userData),
	}
	if hasEmail {
		createReq.Email = primary.EmailAddress
	}

	created, err := h.userService.CreateUser(ctx, createReq)
	if err != nil {
		return fmt.Errorf("failed to create user in database: %w", err)
	}

	if hasEmail && primary.Verification.Status == "verified" {
		if err := h.userService.UpdateEmailVerification(ctx, userData.ID, true); err != nil {
			log.Printf("Failed to mark email verified for %s: %v", userData.ID, err)
		}
	}

	log.Printf("Successfully created user: %s (Clerk ID: %s)", created.Email, created.ClerkID)
	return nil
}

func (h *WebhookHandler) handleUserUpdated(ctx context.Context, data json.RawMessage) error {
	var userData clerk.ClerkUserData
	if err := json.Unmarshal(data, &userData); err != nil {
		return fmt.Errorf("failed to unmarshal user data: %w", err)
	}

	updateReq := &user.UpdateProfileRequest{
		Username:  displayName(&userData),
		FirstName: userData.FirstName,
		LastName:  userData.LastName,
		ImageURL:  imageURL(&userData),
	}

	if _, err := h.userService.UpdateProfileByClerkID(ctx, userData.ID, updateReq); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	log.Printf("Successfully updated user: Clerk ID: %s", userData.ID)
	return nil
}

func (h *WebhookHandler) handleUserDeleted(ctx context.Context, data json.RawMessage) error {
	var userData struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &userData); err != nil {
		return fmt.Errorf("failed to unmarshal user data: %w", err)
	}

	if err := h.userService.DeleteUserByClerkID(ctx, userData.ID); err != nil {
		if statusForError(err) == http.StatusNotFound {
			log.Printf("user.deleted for unknown Clerk ID %s, ignoring", userData.ID)
			return nil
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Printf("Successfully deleted user: Clerk ID: %s", userData.ID)
	return nil
}

// verifyWebhookSignature checks a Svix-style signature: base64 HMAC-SHA256
// over "id.timestamp.body", keyed with the decoded whsec_ secret.
func (h *WebhookHandler) verifyWebhookSignature(header http.Header, body []byte) bool {
	if h.webhookSecret == "" {
		log.Println("CLERK_WEBHOOK_SECRET not set, skipping signature verification")
		return true
	}

	svixID := header.Get("svix-id")
	svixTimestamp := header.Get("svix-timestamp")
	svixSignature := header.Get("svix-signature")

	if svixID == "" || svixTimestamp == "" || svixSignature == "" {
		log.Println("Missing webhook signature headers")
		return false
	}

	ts, err := strconv.ParseInt(svixTimestamp, 10, 64)
	if err != nil {
		return false
	}
	sent := time.Unix(ts, 0)
	if now := h.now(); sent.Before(now.Add(-webhookTolerance)) || sent.After(now.Add(webhookTolerance)) {
		log.Println("Webhook timestamp outside tolerance")
		return false
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(h.webhookSecret, "whsec_"))
	if err != nil {
		log.Printf("Invalid webhook secret: %v", err)
		return false
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(svixID + "." + svixTimestamp + "."))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, sig := range strings.Fields(svixSignature) {
		version, value, found := strings.Cut(sig, ",")
		if found && version == "v1" && hmac.Equal([]byte(value), []byte(expected)) {
			return true
		}
	}
	return false
}
