package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/venue"
)

// filharmoniaScraper covers Filharmónia Magyarország's virtual concert hall.
// The venue site does not host the streams itself, so the detail page's
// stream link is joined into the description together with the page URL.
type filharmoniaScraper struct {
	venue   venue.Descriptor
	fetcher *Fetcher
	listURL string
}

var (
	// Listing anchors start with a Hungarian date, e.g. "2021. március 4".
	filharmoniaListPattern = regexp.MustCompile(`^[0-9]{4}[.] [a-záéúőóüöí]+ [0-9]+`)
	// Detail dates look like "2021. 03. 04. 19:00", with stray spaces.
	filharmoniaDatePattern = regexp.MustCompile(`[0-9]{4}[.] ?[0-9]{1,2}[.] ?[0-9]{1,2}[.] [0-9]{2}:[0-9]{2}`)
)

func newFilharmonia(v venue.Descriptor, f *Fetcher) VenueScraper {
	return &filharmoniaScraper{
		venue:   v,
		fetcher: f,
		listURL: "http://filharmonia.hu/virtualis-koncertterem-elo-kozvetitesek/",
	}
}

func (s *filharmoniaScraper) Venue() venue.Descriptor { return s.venue }

func (s *filharmoniaScraper) Discover() ([]EventRef, error) {
	doc, err := s.fetcher.Document(s.listURL)
	if err != nil {
		return nil, err
	}

	refs := make([]EventRef, 0)
	doc.Find("div.entry-content a[href]").Each(func(_ int, sel *goquery.Selection) {
		if !filharmoniaListPattern.MatchString(strings.TrimSpace(sel.Text())) {
			return
		}
		if href, ok := sel.Attr("href"); ok {
			refs = append(refs, EventRef{URL: href})
		}
	})

	return refs, nil
}

func (s *filharmoniaScraper) FetchDetail(ref EventRef) (event.RawEvent, error) {
	doc, err := s.fetcher.Document(ref.URL)
	if err != nil {
		return event.RawEvent{}, err
	}

	dateBlock := doc.Find("div.list_under_title.program_under_title").First().Text()
	dateText := filharmoniaDatePattern.FindString(dateBlock)
	if dateText == "" {
		return event.RawEvent{}, fmt.Errorf("no date block on page")
	}

	start, err := parseFirst(strings.ReplaceAll(dateText, " ", ""), "2006.1.2.15:04")
	if err != nil {
		return event.RawEvent{}, err
	}

	summary := strings.TrimSpace(doc.Find("h2.list_title.program_title").First().Text())
	summary = strings.TrimPrefix(summary, "(Magyar) ")
	summary = strings.ReplaceAll(summary, " – Online közvetítés", "")

	// The stream itself is linked under the page's call-to-action button.
	description := ref.URL
	if streamURL, ok := doc.Find(`a[rel="attachment wp-att-16975"]`).First().Attr("href"); ok {
		description = streamURL + "\n\n" + ref.URL
	}

	return event.RawEvent{
		Start:       start,
		YearKnown:   true,
		Summary:     summary,
		Description: description,
	}, nil
}
