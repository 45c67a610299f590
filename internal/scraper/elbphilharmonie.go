package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/venue"
)

// elbphilharmonieScraper covers the Elbphilharmonie media library's stream
// category. The detail page has no reliable title markup, so the summary is
// derived from the URL slug.
type elbphilharmonieScraper struct {
	venue   venue.Descriptor
	fetcher *Fetcher
	baseURL string
}

var elbDatePattern = regexp.MustCompile(`on +([0-9]+\s+[A-Za-z]+\s+[0-9]{4})\s+at ([0-9]{2}:[0-9]{2})`)

func newElbphilharmonie(v venue.Descriptor, f *Fetcher) VenueScraper {
	return &elbphilharmonieScraper{
		venue:   v,
		fetcher: f,
		baseURL: "https://www.elbphilharmonie.de",
	}
}

func (s *elbphilharmonieScraper) Venue() venue.Descriptor { return s.venue }

func (s *elbphilharmonieScraper) Discover() ([]EventRef, error) {
	doc, err := s.fetcher.Document(s.baseURL + "/en/mediatheque/category/streams")
	if err != nil {
		return nil, err
	}

	refs := make([]EventRef, 0)
	doc.Find("span").Each(func(_ int, sel *goquery.Selection) {
		if !strings.Contains(sel.Text(), "ive stream") {
			return
		}
		if href, ok := sel.Parent().Find("a[href]").First().Attr("href"); ok {
			refs = append(refs, EventRef{URL: s.baseURL + href})
		}
	})

	return refs, nil
}

func (s *elbphilharmonieScraper) FetchDetail(ref EventRef) (event.RawEvent, error) {
	doc, err := s.fetcher.Document(ref.URL)
	if err != nil {
		return event.RawEvent{}, err
	}

	var dateText string
	doc.Find("p, span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if m := elbDatePattern.FindStringSubmatch(sel.Text()); m != nil {
			dateText = m[1] + " " + m[2]
			return false
		}
		return true
	})
	if dateText == "" {
		return event.RawEvent{}, fmt.Errorf("no stream date on page")
	}

	start, err := parseFirst(strings.Join(strings.Fields(dateText), " "), "2 January 2006 15:04")
	if err != nil {
		return event.RawEvent{}, err
	}

	// Slug of the second-to-last path segment, e.g. ".../stream-xyz-concert/123".
	segments := strings.Split(strings.TrimSuffix(ref.URL, "/"), "/")
	summary := ""
	if len(segments) >= 2 {
		summary = strings.ReplaceAll(segments[len(segments)-2], "-", " ")
	}

	return event.RawEvent{
		Start:       start,
		YearKnown:   true,
		Summary:     summary,
		Description: ref.URL,
	}, nil
}
