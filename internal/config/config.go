package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	ClerkSecretKey     string
	ClerkWebhookSecret string
	AdminClerkIDs      []string

	ResultsFeedURL     string
	ResultsFeedToken   string
	ResultSyncInterval time.Duration

	FCMCredentialsFile string

	MetricsUser string
	MetricsPass string
	PprofSecret string

	RateLimitRPS   float64
	RateLimitBurst int

	InviteBaseURL string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Port:               getEnv("PORT", "3333"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		ClerkSecretKey:     os.Getenv("CLERK_SECRET_KEY"),
		ClerkWebhookSecret: os.Getenv("CLERK_WEBHOOK_SECRET"),
		AdminClerkIDs:      splitList(os.Getenv("ADMIN_CLERK_IDS")),
		ResultsFeedURL:     os.Getenv("RESULTS_FEED_URL"),
		ResultsFeedToken:   os.Getenv("RESULTS_FEED_TOKEN"),
		FCMCredentialsFile: getEnv("FCM_CREDENTIALS_FILE", "./serviceAccountKey.json"),
		MetricsUser:        os.Getenv("METRICS_USER"),
		MetricsPass:        os.Getenv("METRICS_PASS"),
		PprofSecret:        os.Getenv("PPROF_SECRET"),
		InviteBaseURL:      getEnv("INVITE_BASE_URL", "kickoff://leagues/join/"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	if cfg.ClerkSecretKey == "" {
		return nil, fmt.Errorf("CLERK_SECRET_KEY environment variable is not set")
	}

	var err error
	cfg.ResultSyncInterval, err = time.ParseDuration(getEnv("RESULT_SYNC_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESULT_SYNC_INTERVAL: %w", err)
	}
	if cfg.ResultSyncInterval <= 0 {
		return nil, fmt.Errorf("RESULT_SYNC_INTERVAL must be positive")
	}

	cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsAdmin(clerkID string) bool {
	for _, id := range c.AdminClerkIDs {
		if id == clerkID {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
