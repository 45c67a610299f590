package config

// File represents a complete venues configuration file
type File struct {
	Venues []VenueConfig `yaml:"venues"`
}

// VenueConfig describes one venue to scrape
type VenueConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`     // "page" or "youtube"
	Timezone string `yaml:"timezone"` // IANA zone name, page venues only
	Suffix   string `yaml:"suffix"`   // "by" (default) or "at"

	// Livestream fields, youtube venues only.
	Channel        string `yaml:"channel"`
	SearchFallback bool   `yaml:"search_fallback"`
}

// Venue kinds.
const (
	KindPage    = "page"
	KindYouTube = "youtube"
)
