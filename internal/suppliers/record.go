package suppliers

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alex-user-go/hotel-aggregator/internal/search/types"
)

// ErrInvalidRecord is returned when supplier data violates record invariants.
var ErrInvalidRecord = errors.New("invalid hotel record")

// Record is a single immutable hotel offer from one supplier.
type Record struct {
	name           string
	location       string
	pricePerNight  float64
	availableRooms int
	rating         float64
	source         string
}

// NewRecord validates and builds a Record.
func NewRecord(name, location string, pricePerNight float64, availableRooms int, rating float64, source string) (Record, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)

	switch {
	case name == "":
		return Record{}, fmt.Errorf("%w: name is empty", ErrInvalidRecord)
	case math.IsNaN(pricePerNight) || math.IsInf(pricePerNight, 0) || pricePerNight <= 0:
		return Record{}, fmt.Errorf("%w: %q has non-positive price %v", ErrInvalidRecord, name, pricePerNight)
	case availableRooms < 0:
		return Record{}, fmt.Errorf("%w: %q has negative room count %d", ErrInvalidRecord, name, availableRooms)
	case math.IsNaN(rating) || rating < 0 || rating > 5:
		return Record{}, fmt.Errorf("%w: %q has rating %v outside [0,5]", ErrInvalidRecord, name, rating)
	}

	return Record{
		name:           name,
		location:       location,
		pricePerNight:  pricePerNight,
		availableRooms: availableRooms,
		rating:         rating,
		source:         source,
	}, nil
}

func (r Record) Name() string           { return r.name }
func (r Record) Location() string       { return r.location }
func (r Record) PricePerNight() float64 { return r.pricePerNight }
func (r Record) AvailableRooms() int    { return r.availableRooms }
func (r Record) Rating() float64        { return r.rating }
func (r Record) Source() string         { return r.source }

// MatchesFilters reports whether the record passes guest and price filters.
// The guest filter only requires at least one free room.
func (r Record) MatchesFilters(f types.Filters) bool {
	if f.Guests != nil && r.availableRooms < 1 {
		return false
	}
	if f.MinPrice != nil && r.pricePerNight < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && r.pricePerNight > *f.MaxPrice {
		return false
	}
	return true
}

// IdentityKey identifies the same property across suppliers.
func (r Record) IdentityKey() string {
	return strings.ToLower(strings.TrimSpace(r.name + "|" + r.location))
}

// Projection converts the record to its client-facing form.
func (r Record) Projection() types.Hotel {
	return types.Hotel{
		Name:           r.name,
		Location:       r.location,
		PricePerNight:  r.pricePerNight,
		AvailableRooms: r.availableRooms,
		Rating:         r.rating,
		Source:         r.source,
	}
}
