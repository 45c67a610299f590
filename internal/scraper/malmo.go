package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/venue"
)

// malmoScraper covers Malmö Live's programme. Only "MSO Live" items are
// streamed; dates are listed without a year.
type malmoScraper struct {
	venue   venue.Descriptor
	fetcher *Fetcher
	baseURL string
}

func newMalmo(v venue.Descriptor, f *Fetcher) VenueScraper {
	return &malmoScraper{
		venue:   v,
		fetcher: f,
		baseURL: "https://malmolive.se",
	}
}

func (s *malmoScraper) Venue() venue.Descriptor { return s.venue }

func (s *malmoScraper) Discover() ([]EventRef, error) {
	doc, err := s.fetcher.Document(s.baseURL + "/en/program")
	if err != nil {
		return nil, err
	}

	refs := make([]EventRef, 0)
	doc.Find("div.event-list-item--info__title").Each(func(_ int, sel *goquery.Selection) {
		if !strings.Contains(sel.Text(), "MSO Live") {
			return
		}
		if href, ok := sel.ParentsFiltered("a").First().Attr("href"); ok {
			refs = append(refs, EventRef{URL: s.baseURL + href})
		}
	})

	return refs, nil
}

func (s *malmoScraper) FetchDetail(ref EventRef) (event.RawEvent, error) {
	doc, err := s.fetcher.Document(ref.URL)
	if err != nil {
		return event.RawEvent{}, err
	}

	dateText := strings.TrimSpace(doc.Find("div.event--date span").First().Text())
	if dateText == "" {
		return event.RawEvent{}, fmt.Errorf("no date on page")
	}

	// "Thu 25 Mar 19:00", no year on the page.
	start, err := parseFirst(dateText, "Mon 2 Jan 15:04")
	if err != nil {
		return event.RawEvent{}, err
	}

	summary := strings.Join(strings.Fields(doc.Find("h1").First().Text()), " ")

	return event.RawEvent{
		Start:       start,
		Summary:     summary,
		Description: ref.URL,
	}, nil
}
