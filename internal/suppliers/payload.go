package suppliers

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// ErrInvalidPayload is returned when a supplier body cannot be decoded.
var ErrInvalidPayload = errors.New("invalid supplier payload")

// Row is one hotel entry as suppliers send it.
type Row struct {
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	PricePerNight  float64 `json:"price_per_night"`
	AvailableRooms int     `json:"available_rooms"`
	Rating         float64 `json:"rating"`
}

// Payload is a supplier search response. Live and fallback data share it.
type Payload struct {
	Hotels   []Row  `json:"hotels"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Location string `json:"location,omitempty"`
}

// UnmarshalJSON accepts either an object with a hotels field or a bare
// array of hotels.
func (p *Payload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var rows []Row
		if err := json.Unmarshal(data, &rows); err != nil {
			return err
		}
		*p = Payload{Hotels: rows}
		return nil
	}

	type payload Payload
	var raw payload
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Payload(raw)
	return nil
}

// Dataset maps a lower-cased location to its hotel rows.
type Dataset map[string][]Row

// Lookup finds rows for a location, ignoring case and surrounding space.
func (d Dataset) Lookup(location string) []Row {
	return d[strings.ToLower(strings.TrimSpace(location))]
}

// Locations returns the normalized locations the dataset covers, sorted.
func (d Dataset) Locations() []string {
	locations := maps.Keys(d)
	sort.Strings(locations)
	return locations
}
