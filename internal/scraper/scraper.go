package scraper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/venue"
)

// VenueScraper is the contract every venue adapter satisfies. Discover lists
// candidate event references from the venue's listing surface; an empty slice
// with a nil error means no candidates, not a failure. FetchDetail resolves
// one reference into venue-supplied raw fields and is called exactly once per
// reference.
type VenueScraper interface {
	Venue() venue.Descriptor
	Discover() ([]EventRef, error)
	FetchDetail(ref EventRef) (event.RawEvent, error)
}

// EventRef points at one candidate event. Exactly one of URL, VideoID or
// Fragment is set depending on the venue family: a detail-page URL, a
// platform video id, or a handle to an HTML fragment already in hand
// (venues that embed details in their listing rows).
type EventRef struct {
	URL      string
	VideoID  string
	Fragment *goquery.Selection
}

// Key returns a stable string identifying the reference, used for cache keys
// and log fields.
func (r EventRef) Key() string {
	switch {
	case r.VideoID != "":
		return r.VideoID
	case r.URL != "":
		return r.URL
	case r.Fragment != nil:
		text := strings.Join(strings.Fields(r.Fragment.Text()), " ")
		if len(text) > 80 {
			text = text[:80]
		}
		return "fragment:" + text
	}
	return "<empty ref>"
}

// DiscoveryError reports a failed listing scan. It aborts processing for the
// affected venue only.
type DiscoveryError struct {
	Venue string
	Err   error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("venue %s: discovery failed: %v", e.Venue, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// DetailError reports a failed detail fetch or parse for one reference. The
// reference is dropped; the rest of the venue's batch continues.
type DetailError struct {
	Venue string
	Ref   string
	Err   error
}

func (e *DetailError) Error() string {
	return fmt.Sprintf("venue %s: detail %s failed: %v", e.Venue, e.Ref, e.Err)
}

func (e *DetailError) Unwrap() error { return e.Err }

// PageConstructor builds a page-family adapter for one configured venue.
type PageConstructor func(v venue.Descriptor, f *Fetcher) VenueScraper

// pageConstructors is the closed set of page-family venues. Selection happens
// here, at configuration time; call sites never switch on venue ids.
var pageConstructors = map[string]PageConstructor{
	"pcms":            newPCMS,
	"sco":             newSCO,
	"zeneakademia":    newZeneakademia,
	"filharmonia":     newFilharmonia,
	"malmo":           newMalmo,
	"elbphilharmonie": newElbphilharmonie,
	"hr":              newHR,
	"allascala":       newAllaScala,
	"stmary":          newStMary,
}

// NewPageScraper constructs the adapter registered for the descriptor's id.
// Unknown ids fail here rather than at call time.
func NewPageScraper(v venue.Descriptor, f *Fetcher) (VenueScraper, error) {
	ctor, ok := pageConstructors[v.ID]
	if !ok {
		return nil, fmt.Errorf("no page scraper registered for venue %q", v.ID)
	}
	return ctor(v, f), nil
}

// PageVenueIDs lists the registered page-family venue ids, sorted.
func PageVenueIDs() []string {
	ids := make([]string, 0, len(pageConstructors))
	for id := range pageConstructors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
