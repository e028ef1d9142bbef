// Package api fetches rate-limit usage from the Anthropic OAuth usage
// endpoint.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com/api/oauth/usage"
	betaHeader     = "oauth-2025-04-20"
	userAgent      = "claude-status/0.1"

	// DefaultTimeout bounds the single usage request. Overridable through
	// Client.Timeout; there is no retry.
	DefaultTimeout = 10 * time.Second
)

var (
	// ErrAuth means the token was rejected (HTTP 401), body ignored.
	ErrAuth = errors.New("authentication failed (401)")
	// ErrNetwork covers transport failures and unexpected status codes.
	ErrNetwork = errors.New("network error")
	// ErrParse covers an undecodable body or a bad resets_at timestamp.
	ErrParse = errors.New("failed to parse response")
)

// Client issues usage requests. The zero value is not usable; call NewClient.
type Client struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// FetchUsage performs one authenticated GET and decodes both usage windows.
func (c *Client) FetchUsage(accessToken string) (*UsageData, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("anthropic-beta", betaHeader)
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: c.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return nil, ErrAuth
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: API returned %d", ErrNetwork, resp.StatusCode)
	}

	var raw usageResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	fiveHour, err := toPeriod(raw.FiveHour)
	if err != nil {
		return nil, err
	}
	sevenDay, err := toPeriod(raw.SevenDay)
	if err != nil {
		return nil, err
	}

	return &UsageData{FiveHour: fiveHour, SevenDay: sevenDay}, nil
}

func toPeriod(w usageWindow) (UsagePeriod, error) {
	resetsAt, err := time.Parse(time.RFC3339, w.ResetsAt)
	if err != nil {
		return UsagePeriod{}, fmt.Errorf("%w: resets_at: %v", ErrParse, err)
	}
	return UsagePeriod{
		Utilization: w.Utilization,
		ResetsAt:    resetsAt.UTC(),
	}, nil
}
