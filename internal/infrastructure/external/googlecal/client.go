package googlecal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://www.googleapis.com"

// Client is a thin client for the Google Calendar v3 events API. It reads
// the user's primary calendar with the calendar.readonly scope granted
// during the OAuth connect flow.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Event is a single calendar entry, flattened for the coaching UI.
type Event struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location,omitempty"`
}

type eventsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Summary string `json:"summary"`
		Start   struct {
			DateTime string `json:"dateTime"`
			Date     string `json:"date"`
		} `json:"start"`
		End struct {
			DateTime string `json:"dateTime"`
			Date     string `json:"date"`
		} `json:"end"`
		Location string `json:"location"`
	} `json:"items"`
}

// NewClient creates a new Calendar API client
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetBaseURL overrides the API endpoint (used in tests)
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// ListTodayEvents returns the events on the primary calendar between the
// start and end of the given day, ordered by start time.
func (c *Client) ListTodayEvents(ctx context.Context, source oauth2.TokenSource, day time.Time) ([]Event, error) {
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain calendar token: %w", err)
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := url.Values{}
	query.Set("timeMin", dayStart.Format(time.RFC3339))
	query.Set("timeMax", dayEnd.Format(time.RFC3339))
	query.Set("singleEvents", "true")
	query.Set("orderBy", "startTime")
	query.Set("maxResults", "20")

	endpoint := fmt.Sprintf("%s/calendar/v3/calendars/primary/events?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call calendar API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("calendar API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed eventsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse calendar response: %w", err)
	}

	events := make([]Event, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		start := item.Start.DateTime
		if start == "" {
			start = item.Start.Date // all-day event
		}
		end := item.End.DateTime
		if end == "" {
			end = item.End.Date
		}
		events = append(events, Event{
			ID:       item.ID,
			Title:    item.Summary,
			Start:    start,
			End:      end,
			Location: item.Location,
		})
	}

	return events, nil
}
