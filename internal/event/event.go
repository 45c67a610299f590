package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Duration is the fixed length assigned to every event. The system has no
// way to learn true concert length, so it manufactures one.
const Duration = 90 * time.Minute

// Event is the uniform calendar record produced by every scraper path.
type Event struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
}

// IsEmpty reports whether the event is a structurally empty placeholder
// (produced when an upstream step failed). Empty events are skipped silently
// at publication.
func (e Event) IsEmpty() bool {
	return e.Start.IsZero() && e.Summary == "" && e.Description == ""
}

// Validate checks the invariants every normalized event must hold.
func (e Event) Validate() error {
	if e.Start.IsZero() {
		return fmt.Errorf("event start is missing")
	}
	if e.End.Sub(e.Start) != Duration {
		return fmt.Errorf("event duration is %s, want %s", e.End.Sub(e.Start), Duration)
	}
	if strings.TrimSpace(e.Summary) == "" {
		return fmt.Errorf("event summary is empty")
	}
	if e.Description == "" {
		return fmt.Errorf("event description is empty")
	}
	return nil
}

// UID creates a deterministic identifier for an event based on its summary
// and start instant. Used for calendar export, not for deduplication.
func (e Event) UID() string {
	h := sha1.New()
	h.Write([]byte(e.Summary + "|" + e.Start.Format(time.RFC3339)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// RawEvent is the venue-supplied view of one event, as returned by a
// scraper's detail fetch and before normalization.
type RawEvent struct {
	// Start is the scraped timestamp. When Zoned is false it is a naive
	// wall-clock reading to be reinterpreted in the venue's zone. When
	// YearKnown is false the source omitted the year (Start.Year() == 0).
	Start     time.Time
	Zoned     bool
	YearKnown bool

	Summary     string
	Description string
}
