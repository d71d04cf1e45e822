package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/duelboard/internal/domain/model"
)

// Client talks to the duelboard HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// CheckHealth verifies the service and its store are up.
func (c *Client) CheckHealth(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// SubmitGame posts g. A 422 response yields an error wrapping ErrRejected.
func (c *Client) SubmitGame(ctx context.Context, g model.NewGame) (model.GameRecord, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/games", g)
	if err != nil {
		return model.GameRecord{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var rec model.GameRecord
		if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
			return model.GameRecord{}, fmt.Errorf("failed to parse response: %w", err)
		}
		return rec, nil
	case http.StatusUnprocessableEntity:
		body, _ := io.ReadAll(resp.Body)
		return model.GameRecord{}, fmt.Errorf("%w: %s", ErrRejected, bytes.TrimSpace(body))
	default:
		return model.GameRecord{}, unexpected(resp)
	}
}

// Leaderboard fetches up to limit entries for mode.
func (c *Client) Leaderboard(ctx context.Context, mode string, limit int) ([]model.LeaderboardEntry, error) {
	q := url.Values{}
	if mode != "" {
		q.Set("mode", mode)
	}
	q.Set("limit", strconv.Itoa(limit))

	var out []model.LeaderboardEntry
	if err := c.getJSON(ctx, "/api/leaderboard?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats fetches aggregate statistics.
func (c *Client) Stats(ctx context.Context) (model.LeaderboardStats, error) {
	var out model.LeaderboardStats
	err := c.getJSON(ctx, "/api/leaderboard/stats", &out)
	return out, err
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return unexpected(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func unexpected(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%w: HTTP %d: %s", ErrUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(body))
}
