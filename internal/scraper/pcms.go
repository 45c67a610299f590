package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/venue"
)

// pcmsScraper covers the Philadelphia Chamber Music Society livestream
// listing. Events sit in a three-column grid, one link per card; the detail
// page carries the start date in a microdata span.
type pcmsScraper struct {
	venue   venue.Descriptor
	fetcher *Fetcher
	listURL string
}

func newPCMS(v venue.Descriptor, f *Fetcher) VenueScraper {
	return &pcmsScraper{
		venue:   v,
		fetcher: f,
		listURL: "https://www.pcmsconcerts.org/concerts/livestreams/",
	}
}

func (s *pcmsScraper) Venue() venue.Descriptor { return s.venue }

func (s *pcmsScraper) Discover() ([]EventRef, error) {
	doc, err := s.fetcher.Document(s.listURL)
	if err != nil {
		return nil, err
	}

	refs := make([]EventRef, 0)
	doc.Find("div.col-lg-4.col-md-6").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
			refs = append(refs, EventRef{URL: href})
		}
	})

	return refs, nil
}

func (s *pcmsScraper) FetchDetail(ref EventRef) (event.RawEvent, error) {
	doc, err := s.fetcher.Document(ref.URL)
	if err != nil {
		return event.RawEvent{}, err
	}

	summary := strings.TrimSpace(doc.Find("title").First().Text())

	dateText := strings.TrimSpace(doc.Find("span[itemprop=startDate]").First().Text())
	if dateText == "" {
		return event.RawEvent{}, fmt.Errorf("no start date on page")
	}

	start, err := parseFirst(dateText, "Monday, January 2, 2006 - 3:04 PM")
	if err != nil {
		return event.RawEvent{}, err
	}

	return event.RawEvent{
		Start:       start,
		YearKnown:   true,
		Summary:     summary,
		Description: ref.URL,
	}, nil
}
