package scraper

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const (
	// UserAgent identifies concertcal to venue websites.
	UserAgent = "concertcal/1.0 (github.com/okuzmin/concertcal)"
	// Timeout bounds a single page fetch.
	Timeout = 30 * time.Second
)

// Fetcher retrieves venue pages and parses them into goquery documents.
// All page adapters share one fetcher.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the default timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
	}
}

// NewFetcherWithClient creates a fetcher over an existing HTTP client.
// Used by tests to point adapters at httptest servers.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Document fetches url and parses the body into a goquery document. Venue
// pages are not reliably UTF-8, so the body is decoded according to the
// response charset before parsing.
func (f *Fetcher) Document(url string) (*goquery.Document, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return doc, nil
}
