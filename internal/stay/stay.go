// Package stay derives nights and total cost from a date range.
package stay

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"triply/internal/domain"
)

const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Compute returns the number of nights between checkin and checkout, rounded
// to the nearest whole day and never below 1, and the total at nightlyPrice.
// Same-day and inverted ranges are charged one night.
func Compute(checkin, checkout time.Time, nightlyPrice float64) domain.Stay {
	days := float64(checkout.Unix()-checkin.Unix()) / secondsPerDay
	nights := 1
	if n := math.Round(days); n > 1 {
		nights = int(n)
	}
	return domain.Stay{Nights: nights, Total: nightlyPrice * float64(nights)}
}

func Quote(req domain.StayRequest) domain.Stay {
	return Compute(req.Checkin, req.Checkout, req.NightlyPrice)
}

// ParseDate reads a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatTotal is the two-decimal display form of an amount.
func FormatTotal(total float64) string {
	return strconv.FormatFloat(total, 'f', 2, 64)
}

// NightsLabel renders "2 nights" / "1 night".
func NightsLabel(n int) string {
	if n == 1 {
		return "1 night"
	}
	return fmt.Sprintf("%d nights", n)
}
