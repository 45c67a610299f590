// Package cli implements the command-line interface for concertcal.
//
// The cli package provides the Cobra-based CLI with support for running the
// scrape-and-publish pipeline, exporting discovered events as an iCalendar
// file, listing configured venues, and formatting output (text/JSON). It
// coordinates the config, scraper, youtube, cache, runner and calendar
// packages.
package cli
