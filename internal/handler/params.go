package handler

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alex-user-go/hotel-aggregator/internal/search/types"
)

// ValidationErrors maps a query field to its messages.
type ValidationErrors map[string][]string

func (v ValidationErrors) add(field, msg string) {
	v[field] = append(v[field], msg)
}

func (v ValidationErrors) has(field string) bool {
	return len(v[field]) > 0
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, strings.Join(v[f], " "))
	}
	return strings.Join(msgs, " ")
}

// ParseSearchParams parses and validates search query parameters. Check-in
// must not be before today, evaluated in UTC against now.
func ParseSearchParams(r *http.Request, now time.Time) (types.Params, ValidationErrors) {
	query := r.URL.Query()
	errs := ValidationErrors{}
	var p types.Params

	// Location - required, 2..100 characters
	location := strings.TrimSpace(query.Get("location"))
	switch n := utf8.RuneCountInString(location); {
	case n == 0:
		errs.add("location", "Location is required.")
	case n < 2:
		errs.add("location", "Location must be at least 2 characters.")
	case n > 100:
		errs.add("location", "Location must not exceed 100 characters.")
	}
	p.Location = location

	// Check-in - required date, today or later
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if raw := strings.TrimSpace(query.Get("check_in")); raw == "" {
		errs.add("check_in", "Check-in date is required.")
	} else if t, err := time.Parse(types.DateLayout, raw); err != nil {
		errs.add("check_in", "Check-in must be a valid date.")
	} else if t.Before(today) {
		errs.add("check_in", "Check-in date must be today or later.")
	} else {
		p.CheckIn = t
	}

	// Check-out - required date after check-in
	if raw := strings.TrimSpace(query.Get("check_out")); raw == "" {
		errs.add("check_out", "Check-out date is required.")
	} else if t, err := time.Parse(types.DateLayout, raw); err != nil {
		errs.add("check_out", "Check-out must be a valid date.")
	} else {
		p.CheckOut = t
		if !p.CheckIn.IsZero() && !t.After(p.CheckIn) {
			errs.add("check_out", "Check-out date must be after check-in date.")
		}
	}

	// Guests - optional integer 1..20
	if raw := strings.TrimSpace(query.Get("guests")); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.add("guests", "Guests must be a number.")
		case n < 1:
			errs.add("guests", "Guests must be at least 1.")
		case n > 20:
			errs.add("guests", "Guests must not exceed 20.")
		default:
			p.Guests = &n
		}
	}

	p.MinPrice = parsePrice(query.Get("min_price"), "min_price", "Minimum", errs)
	p.MaxPrice = parsePrice(query.Get("max_price"), "max_price", "Maximum", errs)
	if p.MinPrice != nil && p.MaxPrice != nil && *p.MaxPrice < *p.MinPrice && !errs.has("max_price") {
		errs.add("max_price", "Maximum price must be greater than or equal to minimum price.")
	}

	// Sort - optional, price or rating
	if raw := strings.TrimSpace(query.Get("sort_by")); raw != "" {
		switch raw {
		case types.SortByPrice, types.SortByRating:
			p.SortBy = raw
		default:
			errs.add("sort_by", "Sort by must be either price or rating.")
		}
	}

	if len(errs) > 0 {
		return types.Params{}, errs
	}
	return p, nil
}

func parsePrice(raw, field, label string, errs ValidationErrors) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		errs.add(field, label+" price must be a number.")
		return nil
	}
	if v < 0 {
		errs.add(field, label+" price must be at least 0.")
		return nil
	}
	return &v
}
