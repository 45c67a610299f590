// Package venue defines the descriptor shared by every scraper variant: a
// stable id, the display name used for summary suffixing, and the IANA zone
// used to localize naive timestamps scraped from that venue's pages.
package venue

import (
	"fmt"
	"time"
)

// SuffixStyle selects how a venue's name is appended to event summaries
// that do not already mention it.
type SuffixStyle string

const (
	// SuffixBy renders as " by <name>" (the default).
	SuffixBy SuffixStyle = "by"
	// SuffixAt renders as " @<name>".
	SuffixAt SuffixStyle = "at"
)

// Descriptor identifies one configured venue. A descriptor owns exactly one
// scraper instance; scrapers hold no state beyond this configuration.
type Descriptor struct {
	ID     string
	Name   string
	Zone   *time.Location
	Suffix SuffixStyle
}

// New creates a descriptor, resolving tz as an IANA zone name. Livestream
// venues may pass an empty tz; their timestamps arrive already zoned and the
// descriptor falls back to UTC.
func New(id, name, tz string, suffix SuffixStyle) (Descriptor, error) {
	if id == "" {
		return Descriptor{}, fmt.Errorf("venue id is required")
	}
	if name == "" {
		return Descriptor{}, fmt.Errorf("venue %s: name is required", id)
	}

	loc := time.UTC
	if tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return Descriptor{}, fmt.Errorf("venue %s: loading timezone %q: %w", id, tz, err)
		}
	}

	if suffix == "" {
		suffix = SuffixBy
	}

	return Descriptor{ID: id, Name: name, Zone: loc, Suffix: suffix}, nil
}
