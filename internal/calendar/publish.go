package calendar

import (
	"fmt"
	"time"

	"github.com/okuzmin/concertcal/internal/event"
)

// DedupWindow is the span searched for a pre-existing entry when publishing.
// Coarse on purpose: venues provide no stable key, so title equality within
// a loose window is the whole heuristic. It misses reworded duplicates and
// can falsely merge two generically-titled events scheduled close together.
const DedupWindow = 2 * time.Hour

// Outcome reports what Publish did with an event.
type Outcome int

const (
	// Inserted means the event was stored as a new calendar entry.
	Inserted Outcome = iota
	// SkippedEmpty means the event was a structurally empty placeholder.
	SkippedEmpty
	// SkippedDuplicate means an entry with the same summary already exists
	// within the dedup window.
	SkippedDuplicate
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case SkippedEmpty:
		return "skipped-empty"
	case SkippedDuplicate:
		return "skipped-duplicate"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Pipeline publishes canonical events to a calendar store exactly once
// across repeated runs.
type Pipeline struct {
	calendar Client
}

// NewPipeline creates a pipeline over the given store client.
func NewPipeline(c Client) *Pipeline {
	return &Pipeline{calendar: c}
}

// Publish inserts the event unless it is empty or a duplicate already
// exists. An error means the store was unreachable or rejected the insert;
// the event counts as not published and the next scheduled run retries it,
// which the duplicate check keeps safe.
func (p *Pipeline) Publish(e event.Event) (Outcome, error) {
	if e.IsEmpty() {
		return SkippedEmpty, nil
	}

	if err := e.Validate(); err != nil {
		return SkippedEmpty, fmt.Errorf("refusing to publish invalid event: %w", err)
	}

	existing, err := p.calendar.ListEvents(e.Start, e.Start.Add(DedupWindow))
	if err != nil {
		return SkippedEmpty, fmt.Errorf("checking for duplicates: %w", err)
	}

	for _, entry := range existing {
		if entry.Summary == e.Summary {
			return SkippedDuplicate, nil
		}
	}

	if err := p.calendar.InsertEvent(e); err != nil {
		return SkippedEmpty, fmt.Errorf("inserting event: %w", err)
	}

	return Inserted, nil
}
