package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/okuzmin/concertcal/internal/event"
)

// GoogleClient talks to the Google Calendar REST API for one calendar.
// It is handed a ready bearer token; obtaining and refreshing credentials
// is the operator's problem, not the pipeline's.
type GoogleClient struct {
	calendarID string
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleClient creates a client for the given calendar id and token.
func NewGoogleClient(calendarID, token string) *GoogleClient {
	return &GoogleClient{
		calendarID: calendarID,
		token:      token,
		baseURL:    "https://www.googleapis.com/calendar/v3",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewGoogleClientForTest creates a client against an alternative endpoint.
func NewGoogleClientForTest(calendarID, token, baseURL string, httpClient *http.Client) *GoogleClient {
	return &GoogleClient{calendarID: calendarID, token: token, baseURL: baseURL, httpClient: httpClient}
}

type googleEvent struct {
	Summary     string         `json:"summary"`
	Description string         `json:"description,omitempty"`
	Start       googleDateTime `json:"start"`
	End         googleDateTime `json:"end"`
}

type googleDateTime struct {
	DateTime string `json:"dateTime"`
}

// ListEvents implements Client.
func (c *GoogleClient) ListEvents(timeMin, timeMax time.Time) ([]Entry, error) {
	params := url.Values{}
	params.Set("timeMin", timeMin.Format(time.RFC3339))
	params.Set("timeMax", timeMax.Format(time.RFC3339))
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")

	reqURL := fmt.Sprintf("%s/calendars/%s/events?%s",
		c.baseURL, url.PathEscape(c.calendarID), params.Encode())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar API returned status %d", resp.StatusCode)
	}

	var result struct {
		Items []googleEvent `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	entries := make([]Entry, 0, len(result.Items))
	for _, item := range result.Items {
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return nil, fmt.Errorf("parsing entry start %q: %w", item.Start.DateTime, err)
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return nil, fmt.Errorf("parsing entry end %q: %w", item.End.DateTime, err)
		}
		entries = append(entries, Entry{Summary: item.Summary, Start: start, End: end})
	}

	return entries, nil
}

// InsertEvent implements Client.
func (c *GoogleClient) InsertEvent(e event.Event) error {
	body, err := json.Marshal(googleEvent{
		Summary:     e.Summary,
		Description: e.Description,
		Start:       googleDateTime{DateTime: e.Start.Format(time.RFC3339)},
		End:         googleDateTime{DateTime: e.End.Format(time.RFC3339)},
	})
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	reqURL := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))

	req, err := http.NewRequest("POST", reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calendar API returned status %d", resp.StatusCode)
	}

	return nil
}
