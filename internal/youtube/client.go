// Package youtube implements the livestream family of venue adapters: venues
// whose schedule lives in a video platform channel rather than on a website.
//
// Two discovery strategies exist. The uploads scan walks the channel's upload
// playlist and keeps videos carrying live-broadcast scheduling metadata; it
// is cheap against the API quota but misses streams not yet in the uploads
// list. The upcoming-broadcast search finds those too but costs two orders of
// magnitude more quota, so it runs only as a fallback and its results are
// cached.
package youtube

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is the narrow view of the video platform API the scraper needs.
// Authentication, quota and wire protocol live behind it.
type Client interface {
	// ListChannelUploads returns the video ids in the channel's uploads
	// playlist, newest first, up to one API page.
	ListChannelUploads(channelID string) ([]string, error)
	// LiveStreamingDetails returns scheduling metadata for the given videos.
	// Videos without live-broadcast metadata are omitted from the result.
	LiveStreamingDetails(videoIDs []string) ([]VideoDetails, error)
	// SearchUpcomingBroadcasts runs the expensive server-side search for
	// upcoming broadcasts on the channel.
	SearchUpcomingBroadcasts(channelID string) ([]string, error)
}

// VideoDetails is the scheduling metadata of one live-broadcast video.
type VideoDetails struct {
	VideoID        string    `json:"videoId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ChannelTitle   string    `json:"channelTitle"`
	ScheduledStart time.Time `json:"scheduledStart"`
}

// WatchURL returns the canonical watch page for the video.
func (d VideoDetails) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + d.VideoID
}

// APIClient talks to the YouTube Data API v3 with an API key.
type APIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for the public API endpoint.
func NewAPIClient(apiKey string) *APIClient {
	return &APIClient{
		apiKey:  apiKey,
		baseURL: "https://www.googleapis.com/youtube/v3",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewAPIClientForTest creates a client against an alternative endpoint.
func NewAPIClientForTest(apiKey, baseURL string, httpClient *http.Client) *APIClient {
	return &APIClient{apiKey: apiKey, baseURL: baseURL, httpClient: httpClient}
}

func (c *APIClient) get(resource string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, params.Encode())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	return nil
}

// ListChannelUploads implements Client.
func (c *APIClient) ListChannelUploads(channelID string) ([]string, error) {
	var channels struct {
		Items []struct {
			ContentDetails struct {
				RelatedPlaylists struct {
					Uploads string `json:"uploads"`
				} `json:"relatedPlaylists"`
			} `json:"contentDetails"`
		} `json:"items"`
	}

	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)
	if err := c.get("channels", params, &channels); err != nil {
		return nil, fmt.Errorf("listing channel %s: %w", channelID, err)
	}

	videoIDs := make([]string, 0)
	for _, ch := range channels.Items {
		playlistID := ch.ContentDetails.RelatedPlaylists.Uploads
		if playlistID == "" {
			continue
		}

		var playlist struct {
			Items []struct {
				ContentDetails struct {
					VideoID string `json:"videoId"`
				} `json:"contentDetails"`
			} `json:"items"`
		}

		params := url.Values{}
		params.Set("part", "contentDetails")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", "50")
		if err := c.get("playlistItems", params, &playlist); err != nil {
			return nil, fmt.Errorf("listing uploads of %s: %w", channelID, err)
		}

		for _, item := range playlist.Items {
			videoIDs = append(videoIDs, item.ContentDetails.VideoID)
		}
	}

	return videoIDs, nil
}

// LiveStreamingDetails implements Client.
func (c *APIClient) LiveStreamingDetails(videoIDs []string) ([]VideoDetails, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}

	var videos struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				Description  string `json:"description"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
			LiveStreamingDetails *struct {
				ScheduledStartTime string `json:"scheduledStartTime"`
				ActualStartTime    string `json:"actualStartTime"`
			} `json:"liveStreamingDetails"`
		} `json:"items"`
	}

	params := url.Values{}
	params.Set("part", "liveStreamingDetails,snippet")
	params.Set("id", strings.Join(videoIDs, ","))
	if err := c.get("videos", params, &videos); err != nil {
		return nil, fmt.Errorf("fetching video details: %w", err)
	}

	details := make([]VideoDetails, 0, len(videos.Items))
	for _, item := range videos.Items {
		ls := item.LiveStreamingDetails
		if ls == nil {
			continue
		}

		startText := ls.ScheduledStartTime
		if startText == "" {
			startText = ls.ActualStartTime
		}
		start, err := time.Parse(time.RFC3339, startText)
		if err != nil {
			return nil, fmt.Errorf("video %s: parsing start %q: %w", item.ID, startText, err)
		}

		details = append(details, VideoDetails{
			VideoID:        item.ID,
			Title:          item.Snippet.Title,
			Description:    item.Snippet.Description,
			ChannelTitle:   item.Snippet.ChannelTitle,
			ScheduledStart: start,
		})
	}

	return details, nil
}

// SearchUpcomingBroadcasts implements Client.
func (c *APIClient) SearchUpcomingBroadcasts(channelID string) ([]string, error) {
	var result struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}

	params := url.Values{}
	params.Set("part", "id")
	params.Set("channelId", channelID)
	params.Set("type", "video")
	params.Set("eventType", "upcoming")
	if err := c.get("search", params, &result); err != nil {
		return nil, fmt.Errorf("searching upcoming broadcasts of %s: %w", channelID, err)
	}

	videoIDs := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		videoIDs = append(videoIDs, item.ID.VideoID)
	}

	return videoIDs, nil
}
