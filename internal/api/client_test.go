package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := NewClient()
	c.BaseURL = url
	c.Timeout = 2 * time.Second
	return c
}

func TestFetchUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "oauth-2025-04-20", r.Header.Get("anthropic-beta"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`{
			"five_hour": {"utilization": 42.5, "resets_at": "2026-08-29T12:00:00Z"},
			"seven_day": {"utilization": 103.2, "resets_at": "2026-09-01T00:00:00+02:00"}
		}`))
	}))
	defer srv.Close()

	usage, err := newTestClient(srv.URL).FetchUsage("test-token")
	require.NoError(t, err)

	assert.Equal(t, 42.5, usage.FiveHour.Utilization)
	assert.Equal(t, time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC), usage.FiveHour.ResetsAt)
	// Utilization above 100 passes through unclamped.
	assert.Equal(t, 103.2, usage.SevenDay.Utilization)
	// Offset timestamps normalize to UTC.
	assert.Equal(t, time.Date(2026, 8, 31, 22, 0, 0, 0, time.UTC), usage.SevenDay.ResetsAt)
}

func TestFetchUsageUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"five_hour": {"utilization": 1, "resets_at": "2026-08-29T12:00:00Z"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchUsage("expired")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestFetchUsageConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	_, err := newTestClient(srv.URL).FetchUsage("tok")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFetchUsageServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchUsage("tok")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFetchUsageParseFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `five hundred`},
		{"missing resets_at", `{"five_hour": {"utilization": 10}, "seven_day": {"utilization": 5, "resets_at": "2026-08-29T12:00:00Z"}}`},
		{"bad timestamp", `{"five_hour": {"utilization": 10, "resets_at": "yesterday"}, "seven_day": {"utilization": 5, "resets_at": "2026-08-29T12:00:00Z"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).FetchUsage("tok")
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}
