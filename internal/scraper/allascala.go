package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/venue"
)

// allaScalaScraper covers Teatro alla Scala's streaming page. The detail page
// splits the date ("5 March 2021") and the time ("at 6pm CET") across two
// blocks.
type allaScalaScraper struct {
	venue   venue.Descriptor
	fetcher *Fetcher
	baseURL string
}

var scalaTimePattern = regexp.MustCompile(`at [0-9]+[ap]m CET`)

func newAllaScala(v venue.Descriptor, f *Fetcher) VenueScraper {
	return &allaScalaScraper{
		venue:   v,
		fetcher: f,
		baseURL: "https://www.teatroallascala.org",
	}
}

func (s *allaScalaScraper) Venue() venue.Descriptor { return s.venue }

func (s *allaScalaScraper) Discover() ([]EventRef, error) {
	doc, err := s.fetcher.Document(s.baseURL + "/en/scala-streaming.html")
	if err != nil {
		return nil, err
	}

	refs := make([]EventRef, 0)
	doc.Find("article").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
			refs = append(refs, EventRef{URL: s.baseURL + "/" + strings.TrimPrefix(href, "/")})
		}
	})

	return refs, nil
}

func (s *allaScalaScraper) FetchDetail(ref EventRef) (event.RawEvent, error) {
	doc, err := s.fetcher.Document(ref.URL)
	if err != nil {
		return event.RawEvent{}, err
	}

	summary := strings.TrimSpace(doc.Find("h1.title").First().Text())

	dateText := strings.TrimSpace(doc.Find("div.brd-tl").First().Text())
	timeBlock := doc.Find("div.tab.opened").Find("p").First().Text()
	timeText := scalaTimePattern.FindString(timeBlock)
	if dateText == "" || timeText == "" {
		return event.RawEvent{}, fmt.Errorf("no date or time on page")
	}

	// Non-breaking spaces sneak into the date block.
	combined := strings.Join(strings.Fields(strings.ReplaceAll(dateText+" "+timeText, "\u00a0", " ")), " ")

	start, err := parseFirst(strings.TrimSuffix(combined, " CET"), "2 January 2006 at 3pm")
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
