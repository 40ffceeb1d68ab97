package league

import (
	"time"

	"github.com/google/uuid"
)

type League struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	InviteCode  string    `json:"invite_code" db:"invite_code"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateLeagueRequest struct {
	Name string `json:"name" validate:"required,min=3,max=50"`
}

type JoinLeagueRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

type InviteResponse struct {
	LeagueID     uuid.UUID `json:"league_id"`
	InviteCode   string    `json:"invite_code"`
	InviteURL    string    `json:"invite_url"`
	QrCodeBase64 string    `json:"qr_code_base64"`
}
