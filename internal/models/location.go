package models

import (
	"encoding/json"

	"github.com/example/damrideal/internal/utils"
)

// Location is the structured place/city pair stored on listings. Older
// records and clients send a flat string instead; those decode with the
// whole value as the place and an empty city, and get rewritten on the
// next update or normalization sweep.
type Location struct {
	Place string `json:"place"`
	City  string `json:"city"`
}

// UnmarshalJSON accepts either {"place":..., "city":...} or a legacy
// flat string. The city is always stored normalized.
func (l *Location) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		l.Place = legacy
		l.City = ""
		return nil
	}

	type plain Location
	var parsed plain
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}

	l.Place = parsed.Place
	l.City = utils.NormalizeCity(parsed.City)
	return nil
}

// Normalize rewrites the city into canonical title case.
func (l *Location) Normalize() {
	l.City = utils.NormalizeCity(l.City)
}
