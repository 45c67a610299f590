// Package config loads the venue registry from a YAML file. The file is the
// single place venues are declared; everything downstream receives the parsed
// registry and never consults venue ids on its own.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okuzmin/concertcal/internal/scraper"
	"github.com/okuzmin/concertcal/internal/venue"
)

// Load reads and validates a venues file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&file)

	if err := validate(&file); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &file, nil
}

// setDefaults applies default values to configuration
func setDefaults(file *File) {
	for i := range file.Venues {
		v := &file.Venues[i]
		if v.Kind == "" {
			v.Kind = KindPage
		}
		if v.Suffix == "" {
			v.Suffix = string(venue.SuffixBy)
		}
	}
}

// validate validates the configuration
func validate(file *File) error {
	if len(file.Venues) == 0 {
		return fmt.Errorf("no venues configured")
	}

	pageIDs := make(map[string]bool)
	for _, id := range scraper.PageVenueIDs() {
		pageIDs[id] = true
	}

	seen := make(map[string]bool)
	for i, v := range file.Venues {
		if v.ID == "" {
			return fmt.Errorf("venue at index %d: id is required", i)
		}
		if seen[v.ID] {
			return fmt.Errorf("venue %s: duplicate id", v.ID)
		}
		seen[v.ID] = true

		if v.Name == "" {
			return fmt.Errorf("venue %s: name is required", v.ID)
		}
		if v.Suffix != string(venue.SuffixBy) && v.Suffix != string(venue.SuffixAt) {
			return fmt.Errorf("venue %s: invalid suffix %q", v.ID, v.Suffix)
		}

		switch v.Kind {
		case KindPage:
			if !pageIDs[v.ID] {
				return fmt.Errorf("venue %s: no page scraper registered for this id", v.ID)
			}
			if v.Channel != "" {
				return fmt.Errorf("venue %s: channel is only valid for youtube venues", v.ID)
			}
		case KindYouTube:
			if v.Channel == "" {
				return fmt.Errorf("venue %s: channel is required for youtube venues", v.ID)
			}
		default:
			return fmt.Errorf("venue %s: invalid kind %q", v.ID, v.Kind)
		}
	}

	return nil
}

// Descriptor resolves the venue configuration into a runtime descriptor.
func (v VenueConfig) Descriptor() (venue.Descriptor, error) {
	return venue.New(v.ID, v.Name, v.Timezone, venue.SuffixStyle(v.Suffix))
}

// Select returns the venues matching the given ids, or all venues when ids is
// empty. Unknown ids are an error so that typos in --only do not silently
// scrape nothing.
func (f *File) Select(ids []string) ([]VenueConfig, error) {
	if len(ids) == 0 {
		return f.Venues, nil
	}

	byID := make(map[string]VenueConfig, len(f.Venues))
	for _, v := range f.Venues {
		byID[v.ID] = v
	}

	selected := make([]VenueConfig, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown venue id %q", id)
		}
		selected = append(selected, v)
	}
	return selected, nil
}
