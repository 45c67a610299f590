// Package runner drives one scheduled pass over the configured venues:
// discover, fetch details, normalize, publish. Venues run strictly in
// sequence, and failures are contained to the smallest unit that caused
// them. A broken listing loses one venue's batch; a broken detail page
// loses one event; everything else proceeds.
package runner

import (
	"github.com/okuzmin/concertcal/internal/calendar"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/logger"
	"github.com/okuzmin/concertcal/internal/scraper"
)

// Publisher is the publication step of the pipeline.
type Publisher interface {
	Publish(e event.Event) (calendar.Outcome, error)
}

// Report summarizes one venue's pass.
type Report struct {
	Venue      string `json:"venue"`
	Discovered int    `json:"discovered"`
	Inserted   int    `json:"inserted"`
	Duplicates int    `json:"duplicates"`
	Skipped    int    `json:"skipped"`
	Failures   int    `json:"failures"`
}

// Runner executes the pipeline over a set of venue scrapers.
type Runner struct {
	scrapers   []scraper.VenueScraper
	normalizer *event.Normalizer
	publisher  Publisher
	counters   *logger.Counters
}

// New creates a runner. counters may be nil.
func New(scrapers []scraper.VenueScraper, n *event.Normalizer, p Publisher, counters *logger.Counters) *Runner {
	if counters == nil {
		counters = logger.NewCounters()
	}
	return &Runner{scrapers: scrapers, normalizer: n, publisher: p, counters: counters}
}

// Counters exposes the run counters for reporting.
func (r *Runner) Counters() *logger.Counters { return r.counters }

// Run processes every venue and returns one report per venue, in
// configuration order.
func (r *Runner) Run() []Report {
	reports := make([]Report, 0, len(r.scrapers))
	for _, s := range r.scrapers {
		reports = append(reports, r.runVenue(s))
	}
	return reports
}

func (r *Runner) runVenue(s scraper.VenueScraper) Report {
	v := s.Venue()
	rep := Report{Venue: v.ID}

	logger.Info("scanning venue", logger.Fields{"venue": v.ID})

	refs, err := s.Discover()
	if err != nil {
		logger.Error("discovery failed", logger.Fields{"venue": v.ID},
			&scraper.DiscoveryError{Venue: v.ID, Err: err})
		r.counters.Incr("discovery_failures")
		rep.Failures++
		return rep
	}

	rep.Discovered = len(refs)
	r.counters.Add("events_discovered", int64(len(refs)))

	for _, ref := range refs {
		evt, err := r.resolve(s, v.ID, ref)
		if err != nil {
			logger.Warn("event dropped", logger.Fields{"venue": v.ID, "ref": ref.Key(), "reason": err.Error()})
			r.counters.Incr("detail_failures")
			rep.Failures++
			continue
		}

		outcome, err := r.publisher.Publish(evt)
		if err != nil {
			logger.Error("publish failed", logger.Fields{"venue": v.ID, "summary": evt.Summary}, err)
			r.counters.Incr("publish_failures")
			rep.Failures++
			continue
		}

		switch outcome {
		case calendar.Inserted:
			logger.Info("event published", logger.Fields{"venue": v.ID, "summary": evt.Summary})
			r.counters.Incr("events_inserted")
			rep.Inserted++
		case calendar.SkippedDuplicate:
			logger.Debug("duplicate skipped", logger.Fields{"venue": v.ID, "summary": evt.Summary})
			r.counters.Incr("events_duplicate")
			rep.Duplicates++
		case calendar.SkippedEmpty:
			r.counters.Incr("events_skipped")
			rep.Skipped++
		}
	}

	return rep
}

// resolve fetches and normalizes one reference. Detail and normalization
// failures are equivalent from the batch's point of view.
func (r *Runner) resolve(s scraper.VenueScraper, venueID string, ref scraper.EventRef) (event.Event, error) {
	raw, err := s.FetchDetail(ref)
	if err != nil {
		return event.Event{}, &scraper.DetailError{Venue: venueID, Ref: ref.Key(), Err: err}
	}

	evt, err := r.normalizer.Normalize(s.Venue(), raw)
	if err != nil {
		return event.Event{}, &scraper.DetailError{Venue: venueID, Ref: ref.Key(), Err: err}
	}

	return evt, nil
}

// Collect runs discovery and normalization without publishing, returning the
// canonical events alongside per-venue reports. Used for calendar export.
func (r *Runner) Collect() ([]event.Event, []Report) {
	var events []event.Event
	reports := make([]Report, 0, len(r.scrapers))

	for _, s := range r.scrapers {
		v := s.Venue()
		rep := Report{Venue: v.ID}

		refs, err := s.Discover()
		if err != nil {
			logger.Error("discovery failed", logger.Fields{"venue": v.ID},
				&scraper.DiscoveryError{Venue: v.ID, Err: err})
			rep.Failures++
			reports = append(reports, rep)
			continue
		}
		rep.Discovered = len(refs)

		for _, ref := range refs {
			evt, err := r.resolve(s, v.ID, ref)
			if err != nil {
				logger.Warn("event dropped", logger.Fields{"venue": v.ID, "ref": ref.Key(), "reason": err.Error()})
				rep.Failures++
				continue
			}
			events = append(events, evt)
		}

		reports = append(reports, rep)
	}

	return events, reports
}
