package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/venue"
)

// zeneakademiaScraper covers the Liszt Academy streaming page. Listing links
// are relative hrefs inside sold-out event articles; on the detail page the
// date sits in an h2 and the programme text in the sibling of the date's
// grandparent.
type zeneakademiaScraper struct {
	venue   venue.Descriptor
	fetcher *Fetcher
	baseURL string
}

var zeneakademiaDatePattern = regexp.MustCompile(`([0-9]+ [A-Za-z]+ [0-9]{4}), ([0-9]+[.:][0-9]{2})`)

func newZeneakademia(v venue.Descriptor, f *Fetcher) VenueScraper {
	return &zeneakademiaScraper{
		venue:   v,
		fetcher: f,
		baseURL: "https://zeneakademia.hu",
	}
}

func (s *zeneakademiaScraper) Venue() venue.Descriptor { return s.venue }

func (s *zeneakademiaScraper) Discover() ([]EventRef, error) {
	doc, err := s.fetcher.Document(s.baseURL + "/streaming")
	if err != nil {
		return nil, err
	}

	refs := make([]EventRef, 0)
	doc.Find("article.event.soldout").Each(func(_ int, sel *goquery.Selection) {
		links := sel.Find("a[href]")
		if href, ok := links.Last().Attr("href"); ok {
			refs = append(refs, EventRef{URL: s.baseURL + href})
		}
	})

	return refs, nil
}

func (s *zeneakademiaScraper) FetchDetail(ref EventRef) (event.RawEvent, error) {
	doc, err := s.fetcher.Document(ref.URL)
	if err != nil {
		return event.RawEvent{}, err
	}

	var dateTag *goquery.Selection
	doc.Find("h2").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if zeneakademiaDatePattern.MatchString(sel.Text()) {
			dateTag = sel
			return false
		}
		return true
	})
	if dateTag == nil {
		return event.RawEvent{}, fmt.Errorf("no date heading on page")
	}

	m := zeneakademiaDatePattern.FindStringSubmatch(dateTag.Text())
	// Time is written "19.30" or "19:30"; normalize the separator.
	dateText := m[1] + ", " + strings.ReplaceAll(m[2], ".", ":")

	start, err := parseFirst(dateText, "2 January 2006, 15:04")
	if err != nil {
		return event.RawEvent{}, err
	}

	summary := strings.TrimSpace(dateTag.Parent().Parent().Next().Text())

	return event.RawEvent{
		Start:       start,
		YearKnown:   true,
		Summary:     summary,
		Description: ref.URL,
	}, nil
}
