package suppliers

import (
	"math"
	"time"

	"github.com/alex-user-go/hotel-aggregator/internal/search/types"
)

// PricingRule adjusts a base nightly price for a stay.
type PricingRule func(base float64, checkIn, checkOut time.Time) float64

// WeekendPricing adds 20% when the stay starts on Friday, Saturday or Sunday.
func WeekendPricing(base float64, checkIn, _ time.Time) float64 {
	switch checkIn.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return roundPrice(base * 1.20)
	}
	return roundPrice(base)
}

// SeasonalPricing applies summer and winter-holiday surcharges.
func SeasonalPricing(base float64, checkIn, _ time.Time) float64 {
	switch checkIn.Month() {
	case time.June, time.July, time.August:
		return roundPrice(base * 1.15)
	case time.December, time.January:
		return roundPrice(base * 1.25)
	}
	return roundPrice(base)
}

// LengthOfStayPricing discounts weekly stays and marks up single nights.
func LengthOfStayPricing(base float64, checkIn, checkOut time.Time) float64 {
	nights := types.NightsBetween(checkIn, checkOut)
	switch {
	case nights >= 7:
		return roundPrice(base * 0.90)
	case nights == 1:
		return roundPrice(base * 1.10)
	}
	return roundPrice(base)
}

// MonthPeriodPricing discounts early-month and marks up late-month check-ins.
func MonthPeriodPricing(base float64, checkIn, _ time.Time) float64 {
	day := checkIn.Day()
	switch {
	case day <= 10:
		return roundPrice(base * 0.95)
	case day >= 26:
		return roundPrice(base * 1.08)
	}
	return roundPrice(base)
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
