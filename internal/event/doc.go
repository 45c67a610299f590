// Package event defines the canonical calendar event produced by every
// scraper path and the normalizer that shapes venue-supplied raw data into it.
//
// Every event leaving the normalizer satisfies the same invariants: the start
// carries a timezone, the end is exactly 90 minutes after the start, and both
// summary and description are non-empty. The fixed duration is a policy, not
// a measurement; no source reliably reports how long a concert runs.
package event
