package googlecal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func staticToken(tok string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok})
}

func TestListTodayEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "/calendar/v3/calendars/primary/events", r.URL.Path)
		assert.Equal(t, "startTime", r.URL.Query().Get("orderBy"))
		assert.NotEmpty(t, r.URL.Query().Get("timeMin"))

		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id":       "ev-1",
					"summary":  "ABC商事 定例",
					"start":    map[string]string{"dateTime": "2026-09-01T10:00:00+09:00"},
					"end":      map[string]string{"dateTime": "2026-09-01T11:00:00+09:00"},
					"location": "会議室A",
				},
				{
					"id":      "ev-2",
					"summary": "終日イベント",
					"start":   map[string]string{"date": "2026-09-01"},
					"end":     map[string]string{"date": "2026-09-02"},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	events, err := client.ListTodayEvents(context.Background(), staticToken("tok-1"), time.Now())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "ABC商事 定例", events[0].Title)
	assert.Equal(t, "2026-09-01T10:00:00+09:00", events[0].Start)
	// All-day events fall back to the date field
	assert.Equal(t, "2026-09-01", events[1].Start)
}

func TestListTodayEvents_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":401}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	_, err := client.ListTodayEvents(context.Background(), staticToken("expired"), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
