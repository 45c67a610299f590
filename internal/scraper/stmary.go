package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/venue"
)

// stMaryScraper covers St. Mary's Perivale. The events page is one nested
// table with everything on it: each row already carries the date and the
// programme, so discovery hands out fragment references and FetchDetail
// parses the row without another fetch. Streams go out on the church's
// YouTube channel.
type stMaryScraper struct {
	venue      venue.Descriptor
	fetcher    *Fetcher
	listURL    string
	channelURL string
}

func newStMary(v venue.Descriptor, f *Fetcher) VenueScraper {
	return &stMaryScraper{
		venue:      v,
		fetcher:    f,
		listURL:    "https://www.st-marys-perivale.org.uk/events-001.shtml",
		channelURL: "https://www.youtube.com/@stmarysperivale2842",
	}
}

func (s *stMaryScraper) Venue() venue.Descriptor { return s.venue }

func (s *stMaryScraper) Discover() ([]EventRef, error) {
	doc, err := s.fetcher.Document(s.listURL)
	if err != nil {
		return nil, err
	}

	// The schedule is the inner of two nested tables.
	inner := doc.Find("table table").First()
	if inner.Length() == 0 {
		return nil, fmt.Errorf("no schedule table on page")
	}

	refs := make([]EventRef, 0)
	inner.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("td strong").Length() >= 2 {
			refs = append(refs, EventRef{Fragment: row})
		}
	})

	return refs, nil
}

func (s *stMaryScraper) FetchDetail(ref EventRef) (event.RawEvent, error) {
	if ref.Fragment == nil {
		return event.RawEvent{}, fmt.Errorf("reference has no row fragment")
	}

	cells := ref.Fragment.Find("td strong")
	if cells.Length() < 2 {
		return event.RawEvent{}, fmt.Errorf("row has %d cells, want 2", cells.Length())
	}

	dateText := strings.TrimSpace(cells.Eq(0).Text())
	summary := strings.TrimSpace(cells.Eq(1).Text())

	// Dates drift between formats: "Tuesday 2nd March at 7.30pm", with or
	// without weekday, sometimes with a year that is stale mid-season. The
	// year is dropped either way and re-inferred at normalization.
	cleaned := strings.NewReplacer("1st", "1", "2nd", "2", "3rd", "3", "th ", " ").Replace(dateText)
	start, err := parseFirst(cleaned,
		"Monday 2 January 2006 at 3.04pm",
		"Monday 2 January at 3.04pm",
		"2 January 2006 at 3.04pm",
		"2 January at 3.04pm",
		"Monday 2 January at 3pm",
	)
	if err != nil {
		if start, err = parseLoose(cleaned); err != nil {
			return event.RawEvent{}, err
		}
	}
	start = time.Date(0, start.Month(), start.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC)

	return event.RawEvent{
		Start:       start,
		Summary:     summary,
		Description: s.channelURL,
	}, nil
}
