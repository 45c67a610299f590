package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/venue"
)

// hrScraper covers the hr-Sinfonieorchester livestream index. The page is
// German: month names need translation and the time is written "20.15" after
// a dash. The teaser group misses the headline stream, which is linked
// separately in the header.
type hrScraper struct {
	venue   venue.Descriptor
	fetcher *Fetcher
	listURL string
}

var hrDatePattern = regexp.MustCompile(`[0-9]+[.] [A-Za-z]+ [0-9]{4} [–|] [0-9.]{5}`)

func newHR(v venue.Descriptor, f *Fetcher) VenueScraper {
	return &hrScraper{
		venue:   v,
		fetcher: f,
		listURL: "https://www.hr-sinfonieorchester.de/livestreams/index.html",
	}
}

func (s *hrScraper) Venue() venue.Descriptor { return s.venue }

func (s *hrScraper) Discover() ([]EventRef, error) {
	doc, err := s.fetcher.Document(s.listURL)
	if err != nil {
		return nil, err
	}

	refs := make([]EventRef, 0)
	doc.Find("section.c-teaserGroup.-s100").
		Find("article.c-teaser.-alternative.-s100.-v100").
		Each(func(_ int, sel *goquery.Selection) {
			if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
				refs = append(refs, EventRef{URL: href})
			}
		})

	if href, ok := doc.Find("a.link.c-teaser__headlineLink").First().Attr("href"); ok {
		refs = append(refs, EventRef{URL: href})
	}

	return refs, nil
}

func (s *hrScraper) FetchDetail(ref EventRef) (event.RawEvent, error) {
	doc, err := s.fetcher.Document(ref.URL)
	if err != nil {
		return event.RawEvent{}, err
	}

	headline := doc.Find("h2[itemprop=headline]").First()
	if headline.Length() == 0 {
		return event.RawEvent{}, fmt.Errorf("no headline on page")
	}

	dateTag := headline.Find("span").First()
	summary := strings.TrimSpace(dateTag.NextFiltered("span").Text())

	dateText := hrDatePattern.FindString(translateGermanMonths(dateTag.Text()))
	if dateText == "" {
		return event.RawEvent{}, fmt.Errorf("no date in headline")
	}
	dateText = regexp.MustCompile(`[–|] `).ReplaceAllString(dateText, "")

	// "12. März 2021 – 20.15" becomes "12. March 2021 20.15".
	start, err := parseFirst(dateText, "2. January 2006 15.04")
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
