// Package scraper defines the contract every venue adapter satisfies and the
// page-scraping family of implementations.
//
// A venue adapter discovers references to candidate events on a venue's
// listing surface, then resolves each reference into venue-supplied raw
// fields. Page adapters fetch and parse HTML with goquery through a shared
// charset-aware fetcher; the livestream family (package youtube) queries a
// video platform's API instead. Site-specific selector logic lives in one
// small file per venue and is selected by venue id at configuration time;
// adding a venue means adding a constructor, never touching dispatch.
package scraper
