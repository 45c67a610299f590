package cli

import (
	"sort"
	"strings"

	"github.com/okuzmin/concertcal/internal/event"
)

// sortEvents orders events chronologically for export. Ties break on summary
// so output is deterministic across runs.
func sortEvents(events []event.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return strings.ToLower(events[i].Summary) < strings.ToLower(events[j].Summary)
	})
}
