package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/venue"
)

// scoScraper covers the Scottish Chamber Orchestra's streamed-concert
// category. Detail pages omit the year, so raw events leave here with
// YearKnown unset. The orchestra hosts its streams on its own YouTube
// channel, which is appended to the description alongside the event page.
type scoScraper struct {
	venue      venue.Descriptor
	fetcher    *Fetcher
	listURL    string
	channelURL string
}

func newSCO(v venue.Descriptor, f *Fetcher) VenueScraper {
	return &scoScraper{
		venue:      v,
		fetcher:    f,
		listURL:    "https://www.sco.org.uk/whats-on/category/streamed-concert",
		channelURL: "https://www.youtube.com/user/SCOmusic",
	}
}

func (s *scoScraper) Venue() venue.Descriptor { return s.venue }

func (s *scoScraper) Discover() ([]EventRef, error) {
	doc, err := s.fetcher.Document(s.listURL)
	if err != nil {
		return nil, err
	}

	refs := make([]EventRef, 0)
	doc.Find("a.c-media.c-media--link.c-media--event[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			refs = append(refs, EventRef{URL: href})
		}
	})

	return refs, nil
}

func (s *scoScraper) FetchDetail(ref EventRef) (event.RawEvent, error) {
	doc, err := s.fetcher.Document(ref.URL)
	if err != nil {
		return event.RawEvent{}, err
	}

	summary := strings.TrimSpace(doc.
		Find("div.c-page-header__container.o-container").
		Find("h1").First().Text())

	dateText := strings.TrimSpace(doc.Find("time").First().Text())
	if dateText == "" {
		return event.RawEvent{}, fmt.Errorf("no start date on page")
	}

	// "26 March, 7:30PM", no year on the page.
	start, err := parseFirst(dateText, "2 January, 3:04PM", "2 January, 3:04 PM")
	if err != nil {
		return event.RawEvent{}, err
	}

	return event.RawEvent{
		Start:       start,
		Summary:     summary,
		Description: ref.URL + "\n" + s.channelURL,
	}, nil
}
