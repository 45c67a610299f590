package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/okuzmin/concertcal/internal/event"
)

// DryRunClient prints what would be inserted without touching the store.
// When wrapped around a real client, list calls still go through, so the
// duplicate check reflects the actual calendar.
type DryRunClient struct {
	inner Client
	out   io.Writer
}

// NewDryRunClient creates a dry-run wrapper. inner may be nil, in which case
// the calendar is treated as empty.
func NewDryRunClient(inner Client, out io.Writer) *DryRunClient {
	return &DryRunClient{inner: inner, out: out}
}

// ListEvents implements Client.
func (c *DryRunClient) ListEvents(timeMin, timeMax time.Time) ([]Entry, error) {
	if c.inner == nil {
		return nil, nil
	}
	return c.inner.ListEvents(timeMin, timeMax)
}

// InsertEvent implements Client.
func (c *DryRunClient) InsertEvent(e event.Event) error {
	fmt.Fprintf(c.out, "--- would insert ---\n%s\n%s - %s\n%s\n\n",
		e.Summary,
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339),
		e.Description)
	return nil
}
