package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/okuzmin/concertcal/internal/calendar"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/scraper"
	"github.com/okuzmin/concertcal/internal/venue"
)

type fakeScraper struct {
	descriptor venue.Descriptor
	refs       []scraper.EventRef
	discErr    error
	details    map[string]event.RawEvent
	detailErr  map[string]error
}

func (s *fakeScraper) Venue() venue.Descriptor { return s.descriptor }

func (s *fakeScraper) Discover() ([]scraper.EventRef, error) {
	if s.discErr != nil {
		return nil, s.discErr
	}
	return s.refs, nil
}

func (s *fakeScraper) FetchDetail(ref scraper.EventRef) (event.RawEvent, error) {
	if err, ok := s.detailErr[ref.URL]; ok {
		return event.RawEvent{}, err
	}
	return s.details[ref.URL], nil
}

type fakePublisher struct {
	published []event.Event
	outcome   calendar.Outcome
	err       error
}

func (p *fakePublisher) Publish(e event.Event) (calendar.Outcome, error) {
	if p.err != nil {
		return calendar.SkippedEmpty, p.err
	}
	p.published = append(p.published, e)
	return p.outcome, nil
}

func mustVenue(t *testing.T, id, name string) venue.Descriptor {
	t.Helper()
	v, err := venue.New(id, name, "Europe/London", venue.SuffixBy)
	if err != nil {
		t.Fatalf("creating venue: %v", err)
	}
	return v
}

func rawAt(summary string, start time.Time) event.RawEvent {
	return event.RawEvent{
		Start:       start,
		Zoned:       true,
		YearKnown:   true,
		Summary:     summary,
		Description: "https://example.org/stream",
	}
}

func fixedNormalizer() *event.Normalizer {
	return &event.Normalizer{Now: func() time.Time {
		return time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	}}
}

func TestRunPublishesDiscoveredEvents(t *testing.T) {
	start := time.Date(2021, 6, 3, 19, 0, 0, 0, time.UTC)
	s := &fakeScraper{
		descriptor: mustVenue(t, "sco", "Scottish Chamber Orchestra"),
		refs:       []scraper.EventRef{{URL: "a"}, {URL: "b"}},
		details: map[string]event.RawEvent{
			"a": rawAt("Concert A", start),
			"b": rawAt("Concert B", start.AddDate(0, 0, 1)),
		},
	}
	pub := &fakePublisher{outcome: calendar.Inserted}

	reports := New([]scraper.VenueScraper{s}, fixedNormalizer(), pub, nil).Run()

	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	rep := reports[0]
	if rep.Venue != "sco" || rep.Discovered != 2 || rep.Inserted != 2 || rep.Failures != 0 {
		t.Errorf("report = %+v", rep)
	}
	if len(pub.published) != 2 {
		t.Fatalf("published %d events", len(pub.published))
	}
	if pub.published[0].Summary != "Concert A by Scottish Chamber Orchestra" {
		t.Errorf("summary = %q", pub.published[0].Summary)
	}
}

func TestRunEmptyDiscoveryIsNotAFailure(t *testing.T) {
	s := &fakeScraper{descriptor: mustVenue(t, "sco", "SCO")}
	pub := &fakePublisher{outcome: calendar.Inserted}

	reports := New([]scraper.VenueScraper{s}, fixedNormalizer(), pub, nil).Run()

	rep := reports[0]
	if rep.Discovered != 0 || rep.Failures != 0 {
		t.Errorf("report = %+v", rep)
	}
	if len(pub.published) != 0 {
		t.Error("nothing should be published for an empty listing")
	}
}

func TestRunIsolatesVenueFailure(t *testing.T) {
	broken := &fakeScraper{
		descriptor: mustVenue(t, "pcms", "PCMS"),
		discErr:    errors.New("listing page returned 500"),
	}
	healthy := &fakeScraper{
		descriptor: mustVenue(t, "sco", "SCO"),
		refs:       []scraper.EventRef{{URL: "a"}},
		details: map[string]event.RawEvent{
			"a": rawAt("Concert", time.Date(2021, 6, 3, 19, 0, 0, 0, time.UTC)),
		},
	}
	pub := &fakePublisher{outcome: calendar.Inserted}

	runner := New([]scraper.VenueScraper{broken, healthy}, fixedNormalizer(), pub, nil)
	reports := runner.Run()

	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Failures != 1 || reports[0].Discovered != 0 {
		t.Errorf("broken venue report = %+v", reports[0])
	}
	if reports[1].Inserted != 1 {
		t.Errorf("healthy venue report = %+v", reports[1])
	}

	counts := runner.Counters().Snapshot()
	if counts["discovery_failures"] != 1 {
		t.Errorf("discovery_failures = %d", counts["discovery_failures"])
	}
	if counts["events_inserted"] != 1 {
		t.Errorf("events_inserted = %d", counts["events_inserted"])
	}
}

func TestRunIsolatesReferenceFailure(t *testing.T) {
	start := time.Date(2021, 6, 3, 19, 0, 0, 0, time.UTC)
	s := &fakeScraper{
		descriptor: mustVenue(t, "sco", "SCO"),
		refs:       []scraper.EventRef{{URL: "a"}, {URL: "bad"}, {URL: "c"}},
		details: map[string]event.RawEvent{
			"a": rawAt("Concert A", start),
			"c": rawAt("Concert C", start.AddDate(0, 0, 2)),
		},
		detailErr: map[string]error{
			"bad": errors.New("detail page returned 404"),
		},
	}
	pub := &fakePublisher{outcome: calendar.Inserted}

	reports := New([]scraper.VenueScraper{s}, fixedNormalizer(), pub, nil).Run()

	rep := reports[0]
	if rep.Discovered != 3 || rep.Inserted != 2 || rep.Failures != 1 {
		t.Errorf("report = %+v", rep)
	}
}

func TestRunCountsNormalizationFailureAsDetailFailure(t *testing.T) {
	s := &fakeScraper{
		descriptor: mustVenue(t, "sco", "SCO"),
		refs:       []scraper.EventRef{{URL: "a"}},
		details: map[string]event.RawEvent{
			// No summary, normalization rejects it.
			"a": {Start: time.Date(2021, 6, 3, 19, 0, 0, 0, time.UTC), Zoned: true, YearKnown: true},
		},
	}
	pub := &fakePublisher{outcome: calendar.Inserted}

	runner := New([]scraper.VenueScraper{s}, fixedNormalizer(), pub, nil)
	reports := runner.Run()

	if reports[0].Failures != 1 || reports[0].Inserted != 0 {
		t.Errorf("report = %+v", reports[0])
	}
	if runner.Counters().Snapshot()["detail_failures"] != 1 {
		t.Error("normalization failure should count as a detail failure")
	}
}

func TestRunContinuesAfterPublishFailure(t *testing.T) {
	s := &fakeScraper{
		descriptor: mustVenue(t, "sco", "SCO"),
		refs:       []scraper.EventRef{{URL: "a"}},
		details: map[string]event.RawEvent{
			"a": rawAt("Concert", time.Date(2021, 6, 3, 19, 0, 0, 0, time.UTC)),
		},
	}
	pub := &fakePublisher{err: errors.New("calendar unreachable")}

	reports := New([]scraper.VenueScraper{s}, fixedNormalizer(), pub, nil).Run()

	if reports[0].Failures != 1 || reports[0].Inserted != 0 {
		t.Errorf("report = %+v", reports[0])
	}
}

func TestRunCountsDuplicates(t *testing.T) {
	s := &fakeScraper{
		descriptor: mustVenue(t, "sco", "SCO"),
		refs:       []scraper.EventRef{{URL: "a"}},
		details: map[string]event.RawEvent{
			"a": rawAt("Concert", time.Date(2021, 6, 3, 19, 0, 0, 0, time.UTC)),
		},
	}
	pub := &fakePublisher{outcome: calendar.SkippedDuplicate}

	reports := New([]scraper.VenueScraper{s}, fixedNormalizer(), pub, nil).Run()

	if reports[0].Duplicates != 1 || reports[0].Inserted != 0 {
		t.Errorf("report = %+v", reports[0])
	}
}

func TestCollectReturnsEventsWithoutPublishing(t *testing.T) {
	start := time.Date(2021, 6, 3, 19, 0, 0, 0, time.UTC)
	s := &fakeScraper{
		descriptor: mustVenue(t, "sco", "SCO"),
		refs:       []scraper.EventRef{{URL: "a"}, {URL: "bad"}},
		details: map[string]event.RawEvent{
			"a": rawAt("Concert", start),
		},
		detailErr: map[string]error{"bad": errors.New("boom")},
	}
	pub := &fakePublisher{outcome: calendar.Inserted}

	events, reports := New([]scraper.VenueScraper{s}, fixedNormalizer(), pub, nil).Collect()

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if len(pub.published) != 0 {
		t.Error("collect must not publish")
	}
	if reports[0].Discovered != 2 || reports[0].Failures != 1 {
		t.Errorf("report = %+v", reports[0])
	}
}
