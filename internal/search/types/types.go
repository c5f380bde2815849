package types

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the wire format for check-in and check-out dates.
const DateLayout = "2006-01-02"

// Supported sort keys.
const (
	SortByPrice  = "price"
	SortByRating = "rating"
)

// ErrInvalidParams is returned when search parameters are malformed.
var ErrInvalidParams = errors.New("invalid search params")

// Params holds normalized search parameters.
type Params struct {
	Location string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   *int
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
}

// Validate reports the first structural problem with p.
func (p Params) Validate() error {
	if strings.TrimSpace(p.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidParams)
	}
	if p.CheckIn.IsZero() || p.CheckOut.IsZero() {
		return fmt.Errorf("%w: check_in and check_out are required", ErrInvalidParams)
	}
	if !p.CheckOut.After(p.CheckIn) {
		return fmt.Errorf("%w: check_out must be after check_in", ErrInvalidParams)
	}
	if p.Guests != nil && *p.Guests < 1 {
		return fmt.Errorf("%w: guests must be at least 1", ErrInvalidParams)
	}
	if !validPrice(p.MinPrice) {
		return fmt.Errorf("%w: min_price must be a non-negative number", ErrInvalidParams)
	}
	if !validPrice(p.MaxPrice) {
		return fmt.Errorf("%w: max_price must be a non-negative number", ErrInvalidParams)
	}
	if p.MinPrice != nil && p.MaxPrice != nil && *p.MaxPrice < *p.MinPrice {
		return fmt.Errorf("%w: max_price must be greater than or equal to min_price", ErrInvalidParams)
	}
	return nil
}

func validPrice(v *float64) bool {
	if v == nil {
		return true
	}
	return !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v >= 0
}

// NormalizedLocation is the lower-cased, trimmed location used for lookups.
func (p Params) NormalizedLocation() string {
	return strings.ToLower(strings.TrimSpace(p.Location))
}

// NormalizedSortBy is the lower-cased, trimmed sort key.
func (p Params) NormalizedSortBy() string {
	return strings.ToLower(strings.TrimSpace(p.SortBy))
}

// Nights returns the number of nights between check-in and check-out.
func (p Params) Nights() int {
	return NightsBetween(p.CheckIn, p.CheckOut)
}

// Filters extracts the record-level filters.
func (p Params) Filters() Filters {
	return Filters{
		Guests:   p.Guests,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
	}
}

// Canonical returns the stable representation used for cache keys.
func (p Params) Canonical() Canonical {
	return Canonical{
		Location: p.NormalizedLocation(),
		CheckIn:  p.CheckIn.Format(DateLayout),
		CheckOut: p.CheckOut.Format(DateLayout),
		Guests:   p.Guests,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
		SortBy:   p.NormalizedSortBy(),
	}
}

// Canonical is the JSON shape hashed into a cache key. Field order is fixed.
type Canonical struct {
	Location string   `json:"location"`
	CheckIn  string   `json:"check_in"`
	CheckOut string   `json:"check_out"`
	Guests   *int     `json:"guests"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
	SortBy   string   `json:"sort_by"`
}

// Filters are applied to every supplier record.
type Filters struct {
	Guests   *int
	MinPrice *float64
	MaxPrice *float64
}

// Hotel is the aggregated, client-facing hotel offer.
type Hotel struct {
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	PricePerNight  float64 `json:"price_per_night"`
	AvailableRooms int     `json:"available_rooms"`
	Rating         float64 `json:"rating"`
	Source         string  `json:"source"`
}

// NightsBetween counts calendar nights between two dates.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}
