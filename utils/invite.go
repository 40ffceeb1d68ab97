package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"

	"github.com/skip2/go-qrcode"
)

// no 0/O or 1/I so codes survive being read aloud
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const InviteCodeLength = 8

func GenerateInviteCode() (string, error) {
	var sb strings.Builder
	sb.Grow(InviteCodeLength)

	max := big.NewInt(int64(len(inviteAlphabet)))
	for i := 0; i < InviteCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		sb.WriteByte(inviteAlphabet[n.Int64()])
	}

	return sb.String(), nil
}

// NormalizeInviteCode upper-cases and strips spaces and dashes typed by users.
func NormalizeInviteCode(code string) string {
	code = strings.ToUpper(code)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, code)
}

// InviteQRCode renders content as a base64 PNG.
func InviteQRCode(content string) (string, error) {
	pngBytes, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(pngBytes), nil
}
