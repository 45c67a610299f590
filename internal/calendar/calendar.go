// Package calendar publishes canonical events to an external calendar store.
//
// The store is reached through the narrow Client interface; the pipeline's
// only protocol is check-then-insert inside a loose time window, which keeps
// repeated runs idempotent without a stable external event key. The sequence
// is not transactional: two concurrent runs can double-insert. The system
// runs on a low-frequency schedule with a single writer, so that race is
// accepted rather than locked away.
package calendar

import (
	"time"

	"github.com/okuzmin/concertcal/internal/event"
)

// Entry is one existing calendar record, as much of it as deduplication needs.
type Entry struct {
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// Client is the narrow view of the calendar store. Authentication, quota and
// wire protocol live behind it.
type Client interface {
	// ListEvents returns entries starting in [timeMin, timeMax), ordered by
	// start time.
	ListEvents(timeMin, timeMax time.Time) ([]Entry, error)
	// InsertEvent stores the event as a new calendar entry.
	InsertEvent(e event.Event) error
}
