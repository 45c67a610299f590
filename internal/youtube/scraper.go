package youtube

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/okuzmin/concertcal/internal/cache"
	"github.com/okuzmin/concertcal/internal/event"
	"github.com/okuzmin/concertcal/internal/scraper"
	"github.com/okuzmin/concertcal/internal/venue"
)

// ChannelScraper adapts one platform channel to the venue-scraper contract.
type ChannelScraper struct {
	venue          venue.Descriptor
	channelID      string
	client         Client
	cache          *cache.Cache
	searchFallback bool
	now            func() time.Time
}

// NewChannelScraper creates a livestream adapter for the channel. When
// searchFallback is set, an empty uploads scan triggers the expensive
// upcoming-broadcast search, whose result goes through the cache.
func NewChannelScraper(v venue.Descriptor, channelID string, client Client, c *cache.Cache, searchFallback bool) (*ChannelScraper, error) {
	if channelID == "" {
		return nil, fmt.Errorf("venue %s: channel id is required", v.ID)
	}
	if client == nil {
		return nil, fmt.Errorf("venue %s: platform client is required", v.ID)
	}

	return &ChannelScraper{
		venue:          v,
		channelID:      channelID,
		client:         client,
		cache:          c,
		searchFallback: searchFallback,
		now:            time.Now,
	}, nil
}

// Venue implements scraper.VenueScraper.
func (s *ChannelScraper) Venue() venue.Descriptor { return s.venue }

// Discover implements scraper.VenueScraper. The uploads scan is deliberately
// uncached: "is this still in the future" must be answered at call time.
func (s *ChannelScraper) Discover() ([]scraper.EventRef, error) {
	videoIDs, err := s.client.ListChannelUploads(s.channelID)
	if err != nil {
		return nil, err
	}

	refs := make([]scraper.EventRef, 0)
	if len(videoIDs) > 0 {
		details, err := s.client.LiveStreamingDetails(videoIDs)
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			if d.ScheduledStart.After(s.now()) {
				refs = append(refs, scraper.EventRef{VideoID: d.VideoID})
			}
		}
	}

	if len(refs) == 0 && s.searchFallback {
		searched, err := s.searchUpcoming()
		if err != nil {
			return nil, err
		}
		for _, id := range searched {
			refs = append(refs, scraper.EventRef{VideoID: id})
		}
	}

	return refs, nil
}

func (s *ChannelScraper) searchUpcoming() ([]string, error) {
	payload, err := s.cache.Do("search:"+s.channelID, func() ([]byte, error) {
		ids, err := s.client.SearchUpcomingBroadcasts(s.channelID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(ids)
	})
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(payload, &ids); err != nil {
		return nil, fmt.Errorf("decoding cached search result: %w", err)
	}
	return ids, nil
}

// FetchDetail implements scraper.VenueScraper. Video details are memoized:
// scheduling metadata for an announced broadcast rarely changes within the
// cache retention window.
func (s *ChannelScraper) FetchDetail(ref scraper.EventRef) (event.RawEvent, error) {
	if ref.VideoID == "" {
		return event.RawEvent{}, fmt.Errorf("reference has no video id")
	}

	payload, err := s.cache.Do("videos:"+ref.VideoID, func() ([]byte, error) {
		details, err := s.client.LiveStreamingDetails([]string{ref.VideoID})
		if err != nil {
			return nil, err
		}
		if len(details) == 0 {
			return nil, fmt.Errorf("video %s has no live streaming details", ref.VideoID)
		}
		return json.Marshal(details[0])
	})
	if err != nil {
		return event.RawEvent{}, err
	}

	var d VideoDetails
	if err := json.Unmarshal(payload, &d); err != nil {
		return event.RawEvent{}, fmt.Errorf("decoding cached video details: %w", err)
	}

	// Platform timestamps arrive zoned; nothing to localize.
	return event.RawEvent{
		Start:       d.ScheduledStart,
		Zoned:       true,
		YearKnown:   true,
		Summary:     d.Title,
		Description: d.WatchURL(),
	}, nil
}
