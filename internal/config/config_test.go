package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/kickoff_test")
	t.Setenv("CLERK_SECRET_KEY", "sk_test_123")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("RESULT_SYNC_INTERVAL", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("RATE_LIMIT_BURST", "")
	t.Setenv("ADMIN_CLERK_IDS", "")
	t.Setenv("INVITE_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3333", cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.ResultSyncInterval)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 30, cfg.RateLimitBurst)
	assert.Empty(t, cfg.AdminClerkIDs)
	assert.Equal(t, "kickoff://leagues/join/", cfg.InviteBaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8080")
	t.Setenv("RESULT_SYNC_INTERVAL", "90s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("ADMIN_CLERK_IDS", "user_a, user_b,,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.ResultSyncInterval)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, []string{"user_a", "user_b"}, cfg.AdminClerkIDs)
	assert.True(t, cfg.IsAdmin("user_b"))
	assert.False(t, cfg.IsAdmin("user_c"))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}},
		{"missing clerk key", map[string]string{"CLERK_SECRET_KEY": ""}},
		{"bad interval", map[string]string{"RESULT_SYNC_INTERVAL": "often"}},
		{"negative interval", map[string]string{"RESULT_SYNC_INTERVAL": "-1m"}},
		{"bad rps", map[string]string{"RATE_LIMIT_RPS": "fast"}},
		{"bad burst", map[string]string{"RATE_LIMIT_BURST": "1.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
