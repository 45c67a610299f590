package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/okuzmin/concertcal/internal/venue"
)

// Normalizer converts venue-supplied raw events into canonical ones. The
// clock is injectable so year inference can be tested against a fixed date.
type Normalizer struct {
	Now func() time.Time
}

// NewNormalizer creates a normalizer using the system clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{Now: time.Now}
}

// Normalize applies the canonicalization rules to one raw event:
// naive timestamps are reinterpreted as wall-clock time in the venue's zone,
// missing years are inferred (months earlier than the current month roll to
// next year), the end is fixed at start plus Duration, and the venue name is
// appended to summaries that do not already mention it.
func (n *Normalizer) Normalize(v venue.Descriptor, raw RawEvent) (Event, error) {
	summary := strings.TrimSpace(raw.Summary)
	if summary == "" {
		return Event{}, fmt.Errorf("venue %s: raw event has empty summary", v.ID)
	}

	description := strings.TrimSpace(raw.Description)
	if description == "" {
		return Event{}, fmt.Errorf("venue %s: raw event has empty description", v.ID)
	}

	if raw.Start.IsZero() {
		return Event{}, fmt.Errorf("venue %s: raw event has no start time", v.ID)
	}

	start := raw.Start
	if !raw.Zoned {
		year := start.Year()
		if !raw.YearKnown {
			// Sites that omit the year list at most a season ahead, so a
			// month earlier than the current one means next year. Ambiguous
			// right at year boundaries and blind beyond ~11 months out.
			now := n.Now().In(v.Zone)
			if start.Month() < now.Month() {
				year = now.Year() + 1
			} else {
				year = now.Year()
			}
		}

		start = time.Date(year, start.Month(), start.Day(),
			start.Hour(), start.Minute(), start.Second(), 0, v.Zone)

		// time.Date normalizes out-of-range dates (Feb 29 in a non-leap
		// year becomes Mar 1); treat any shift as an impossible date.
		if start.Month() != raw.Start.Month() || start.Day() != raw.Start.Day() {
			return Event{}, fmt.Errorf("venue %s: inferred date %04d-%02d-%02d does not exist",
				v.ID, year, raw.Start.Month(), raw.Start.Day())
		}
	}

	if !strings.Contains(summary, v.Name) {
		switch v.Suffix {
		case venue.SuffixAt:
			summary += " @" + v.Name
		default:
			summary += " by " + v.Name
		}
	}

	e := Event{
		Start:       start,
		End:         start.Add(Duration),
		Summary:     summary,
		Description: description,
	}
	if err := e.Validate(); err != nil {
		return Event{}, fmt.Errorf("venue %s: %w", v.ID, err)
	}

	return e, nil
}
