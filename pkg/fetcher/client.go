package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"shem.pro/energy-telemetry-service/pkg/models"
)

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Message)
}

// Client talks to the live/history endpoints. When an auth token is present
// it is attached as the x-auth-token header the login flow issues.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.AuthToken,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (c *Client) Live(ctx context.Context) (models.LiveReading, error) {
	var reading models.LiveReading
	err := c.get(ctx, "/data/live", &reading)
	return reading, err
}

func (c *Client) History(ctx context.Context) ([]models.LiveReading, error) {
	var readings []models.LiveReading
	err := c.get(ctx, "/data/history", &readings)
	return readings, err
}

func (c *Client) SevenDay(ctx context.Context) ([]models.DailySummary, error) {
	var summaries []models.DailySummary
	err := c.get(ctx, "/data/history/7day", &summaries)
	return summaries, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("x-auth-token", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &StatusError{Code: resp.StatusCode, Message: body.Message}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Classify maps a fetch failure onto the notification taxonomy: expired
// sessions force a re-login, transport failures mark the backend
// unreachable, everything else is a generic failure.
func Classify(err error) EventKind {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code == http.StatusUnauthorized {
			return EventAuthExpired
		}
		return EventGeneric
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return EventNetwork
	}

	return EventGeneric
}
