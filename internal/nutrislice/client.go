// Package nutrislice talks to the Nutrislice-style menu API that is the
// system of record for menu content.
package nutrislice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"school-menu/internal/config"
)

// Client is an interface for the upstream menu provider. Get returns the raw
// response body and HTTP status for one meal type and date; callers decide how
// to interpret the payload.
type Client interface {
	Get(ctx context.Context, mealType, date string) ([]byte, int, error)
}

type apiClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new upstream API client.
func NewClient(cfg *config.Config) Client {
	return &apiClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    cfg.MenuAPIBaseURL,
	}
}

// URL builds the upstream request URL. The provider expects the calendar date
// with slash separators, so the YYYY-MM-DD input is rewritten to YYYY/MM/DD.
func URL(baseURL, mealType, date string) string {
	return fmt.Sprintf("%s/%s/%s", baseURL, mealType, strings.ReplaceAll(date, "-", "/"))
}

// Get fetches the week document covering the given date for one meal type.
func (c *apiClient) Get(ctx context.Context, mealType, date string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL(c.baseURL, mealType, date), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}
