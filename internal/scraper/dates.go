package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// parseFirst tries each layout in order and returns the first successful
// parse. The result is naive: whatever zone the layout implies is ignored by
// the normalizer, which reinterprets wall-clock time in the venue's zone.
func parseFirst(s string, layouts ...string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// parseLoose handles venues whose date text drifts between formats (ordinal
// suffixes, weekday prefixes). Falls back to dateparse after stripping
// ordinal markers, returning a naive wall-clock reading.
func parseLoose(s string) (time.Time, error) {
	cleaned := strings.NewReplacer("1st", "1", "2nd", "2", "3rd", "3", "th ", " ").Replace(s)
	t, err := dateparse.ParseIn(cleaned, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", s, err)
	}
	return t, nil
}

// germanMonths maps German month names to English so German-language venue
// pages parse with standard layouts.
var germanMonths = strings.NewReplacer(
	"Januar", "January",
	"Februar", "February",
	"März", "March",
	"Mai", "May",
	"Juni", "June",
	"Juli", "July",
	"Oktober", "October",
	"Dezember", "December",
)

// translateGermanMonths rewrites German month names in s to English.
// April, August, September and November are spelled identically.
func translateGermanMonths(s string) string {
	return germanMonths.Replace(s)
}
