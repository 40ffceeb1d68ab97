package resultsync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const feedStatusFinished = "FINISHED"

type FeedTeam struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

type FeedScore struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type FeedMatch struct {
	ID       int       `json:"id"`
	UTCDate  time.Time `json:"utcDate"`
	Status   string    `json:"status"`
	HomeTeam FeedTeam  `json:"homeTeam"`
	AwayTeam FeedTeam  `json:"awayTeam"`
	Score    struct {
		FullTime FeedScore `json:"fullTime"`
	} `json:"score"`
}

// Final reports the full-time score when the feed marks the match finished.
func (m *FeedMatch) Final() (home, away int, ok bool) {
	if m.Status != feedStatusFinished || m.Score.FullTime.Home == nil || m.Score.FullTime.Away == nil {
		return 0, 0, false
	}
	return *m.Score.FullTime.Home, *m.Score.FullTime.Away, true
}

type feedResponse struct {
	Matches []FeedMatch `json:"matches"`
}

// Client reads finished fixtures from a football-data.org style API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient throttles outbound calls to ten per minute, the free-tier quota.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(6*time.Second), 1),
	}
}

func (c *Client) FinishedMatches(ctx context.Context, from, to time.Time) ([]FeedMatch, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("feed rate limiter: %w", err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed url: %w", err)
	}
	u = u.JoinPath("matches")
	q := u.Query()
	q.Set("status", feedStatusFinished)
	q.Set("dateFrom", from.UTC().Format("2006-01-02"))
	q.Set("dateTo", to.UTC().Format("2006-01-02"))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("X-Auth-Token", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("results feed returned %s", resp.Status)
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode results feed: %w", err)
	}

	return body.Matches, nil
}
