package cli

import (
	"fmt"

	"github.com/okuzmin/concertcal/internal/cache"
	"github.com/okuzmin/concertcal/internal/config"
	"github.com/okuzmin/concertcal/internal/logger"
	"github.com/okuzmin/concertcal/internal/scraper"
	"github.com/okuzmin/concertcal/internal/youtube"
)

// loadVenues loads the registry and applies --only.
func loadVenues() ([]config.VenueConfig, error) {
	file, err := config.Load(flagVenuesFile)
	if err != nil {
		return nil, err
	}
	return file.Select(flagOnly)
}

// openCache opens the metadata cache named by --cache-db. Caching is off
// unless a path is given.
func openCache() (*cache.Cache, func(), error) {
	if flagCacheDB == "" {
		return cache.Disabled(), func() {}, nil
	}

	store, err := cache.OpenSQLiteStore(flagCacheDB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}

	closer := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing cache", logger.Fields{"error": err.Error()})
		}
	}
	return cache.New(store, flagCacheTTL), closer, nil
}

// buildScrapers constructs one scraper per configured venue, plus a closer
// for the shared cache.
func buildScrapers() ([]scraper.VenueScraper, func(), error) {
	venues, err := loadVenues()
	if err != nil {
		return nil, nil, err
	}

	c, closeCache, err := openCache()
	if err != nil {
		return nil, nil, err
	}

	fetcher := scraper.NewFetcher()
	var ytClient youtube.Client

	scrapers := make([]scraper.VenueScraper, 0, len(venues))
	for _, vc := range venues {
		d, err := vc.Descriptor()
		if err != nil {
			closeCache()
			return nil, nil, err
		}

		switch vc.Kind {
		case config.KindPage:
			s, err := scraper.NewPageScraper(d, fetcher)
			if err != nil {
				closeCache()
				return nil, nil, err
			}
			scrapers = append(scrapers, s)

		case config.KindYouTube:
			if ytClient == nil {
				if flagYouTubeKey == "" {
					closeCache()
					return nil, nil, fmt.Errorf("venue %s requires --youtube-key (or env: YOUTUBE_API_KEY)", vc.ID)
				}
				ytClient = youtube.NewAPIClient(flagYouTubeKey)
			}
			s, err := youtube.NewChannelScraper(d, vc.Channel, ytClient, c, vc.SearchFallback)
			if err != nil {
				closeCache()
				return nil, nil, err
			}
			scrapers = append(scrapers, s)
		}
	}

	return scrapers, closeCache, nil
}
