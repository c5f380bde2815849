package suppliers

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/alex-user-go/hotel-aggregator/internal/search/types"
)

// Registered supplier identifiers, in merge order.
const (
	SupplierA = "supplier_a"
	SupplierB = "supplier_b"
	SupplierC = "supplier_c"
	SupplierD = "supplier_d"
)

// Placeholder endpoints used when no URL is configured.
const (
	DefaultEndpointA = "https://api.supplier-a.com/hotels/search"
	DefaultEndpointB = "https://api.supplier-b.com/hotels/search"
	DefaultEndpointC = "https://api.supplier-c.com/hotels/search"
	DefaultEndpointD = "https://api.supplier-d.com/hotels/search"
)

// Supplier is a hotel inventory source with its own dataset and pricing.
type Supplier struct {
	name     string
	endpoint string
	dataset  Dataset
	pricing  PricingRule
}

// New creates a Supplier.
func New(name, endpoint string, dataset Dataset, pricing PricingRule) *Supplier {
	return &Supplier{
		name:     name,
		endpoint: endpoint,
		dataset:  dataset,
		pricing:  pricing,
	}
}

func NewSupplierA(endpoint string) *Supplier {
	return New(SupplierA, endpoint, datasetA, WeekendPricing)
}

func NewSupplierB(endpoint string) *Supplier {
	return New(SupplierB, endpoint, datasetB, SeasonalPricing)
}

func NewSupplierC(endpoint string) *Supplier {
	return New(SupplierC, endpoint, datasetC, LengthOfStayPricing)
}

func NewSupplierD(endpoint string) *Supplier {
	return New(SupplierD, endpoint, datasetD, MonthPeriodPricing)
}

// Default returns all suppliers with placeholder endpoints, in merge order.
func Default() []*Supplier {
	return []*Supplier{
		NewSupplierA(DefaultEndpointA),
		NewSupplierB(DefaultEndpointB),
		NewSupplierC(DefaultEndpointC),
		NewSupplierD(DefaultEndpointD),
	}
}

// ByName builds the named supplier with the given endpoint.
func ByName(name, endpoint string) (*Supplier, error) {
	switch name {
	case SupplierA:
		return NewSupplierA(endpoint), nil
	case SupplierB:
		return NewSupplierB(endpoint), nil
	case SupplierC:
		return NewSupplierC(endpoint), nil
	case SupplierD:
		return NewSupplierD(endpoint), nil
	}
	return nil, fmt.Errorf("unknown supplier %q", name)
}

// Name returns the supplier identifier.
func (s *Supplier) Name() string {
	return s.name
}

// Locations lists the locations the supplier's dataset covers.
func (s *Supplier) Locations() []string {
	return s.dataset.Locations()
}

// AdjustPrice applies the supplier pricing rule.
func (s *Supplier) AdjustPrice(base float64, checkIn, checkOut time.Time) float64 {
	return s.pricing(base, checkIn, checkOut)
}

// Search looks up the local dataset, prices each row and applies filters.
// An unknown location yields no records and no error.
func (s *Supplier) Search(location string, checkIn, checkOut time.Time, filters types.Filters) ([]Record, error) {
	rows := s.dataset.Lookup(location)
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		price := s.AdjustPrice(row.PricePerNight, checkIn, checkOut)
		r, err := NewRecord(row.Name, row.Location, price, row.AvailableRooms, row.Rating, s.name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		if r.MatchesFilters(filters) {
			records = append(records, r)
		}
	}
	return records, nil
}

// Endpoint builds the live search URL for p. Unset optional values are omitted.
func (s *Supplier) Endpoint(p types.Params) string {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return s.endpoint
	}

	q := u.Query()
	q.Set("location", p.Location)
	if !p.CheckIn.IsZero() {
		q.Set("check_in", p.CheckIn.Format(types.DateLayout))
	}
	if !p.CheckOut.IsZero() {
		q.Set("check_out", p.CheckOut.Format(types.DateLayout))
	}
	if p.Guests != nil {
		q.Set("guests", strconv.Itoa(*p.Guests))
	}
	if p.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// MapResponse converts a payload into records. Pricing is applied only when
// the payload carries both stay dates.
func (s *Supplier) MapResponse(p Payload) ([]Record, error) {
	var (
		checkIn, checkOut time.Time
		priced            bool
	)
	if p.CheckIn != "" && p.CheckOut != "" {
		var err error
		if checkIn, err = time.Parse(types.DateLayout, p.CheckIn); err != nil {
			return nil, fmt.Errorf("%s: %w: check_in: %w", s.name, ErrInvalidPayload, err)
		}
		if checkOut, err = time.Parse(types.DateLayout, p.CheckOut); err != nil {
			return nil, fmt.Errorf("%s: %w: check_out: %w", s.name, ErrInvalidPayload, err)
		}
		priced = true
	}

	records := make([]Record, 0, len(p.Hotels))
	for _, row := range p.Hotels {
		price := row.PricePerNight
		if priced && price > 0 {
			price = s.AdjustPrice(price, checkIn, checkOut)
		}
		location := row.Location
		if location == "" {
			location = p.Location
		}
		r, err := NewRecord(row.Name, location, price, row.AvailableRooms, row.Rating, s.name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// FallbackData wraps the local dataset rows for location as a payload.
func (s *Supplier) FallbackData(location string, checkIn, checkOut time.Time) Payload {
	rows := s.dataset.Lookup(location)
	p := Payload{
		Hotels:   make([]Row, len(rows)),
		Location: location,
	}
	copy(p.Hotels, rows)
	if !checkIn.IsZero() {
		p.CheckIn = checkIn.Format(types.DateLayout)
	}
	if !checkOut.IsZero() {
		p.CheckOut = checkOut.Format(types.DateLayout)
	}
	return p
}
