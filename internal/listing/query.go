// Package listing turns raw search criteria into a FilterSpec and applies it
// to a catalog snapshot.
package listing

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"triply/internal/domain"
)

// RawQuery is user input as it arrives from a form or a query string.
type RawQuery struct {
	Destination    string
	Checkin        string
	Checkout       string
	Guests         string
	PriceTokens    []string // "min,max"; max may be empty or Infinity
	RatingTokens   []string
	FacilityTokens []string
	SortToken      string
}

// RawQueryFromValues reads the listing query parameters: dest, checkin,
// checkout, guests, repeated price/rating/facility, and sort.
func RawQueryFromValues(v url.Values) RawQuery {
	return RawQuery{
		Destination:    v.Get("dest"),
		Checkin:        v.Get("checkin"),
		Checkout:       v.Get("checkout"),
		Guests:         v.Get("guests"),
		PriceTokens:    v["price"],
		RatingTokens:   v["rating"],
		FacilityTokens: v["facility"],
		SortToken:      v.Get("sort"),
	}
}

// ParseQuery normalizes q. Absent inputs leave their dimension unconstrained
// and malformed optional tokens are dropped; it never fails.
func ParseQuery(q RawQuery) domain.FilterSpec {
	spec := domain.FilterSpec{
		Destination: strings.TrimSpace(q.Destination),
		Sort:        ParseSort(q.SortToken),
	}
	for _, tok := range q.PriceTokens {
		if b, ok := ParseBand(tok); ok {
			spec.PriceBands = append(spec.PriceBands, b)
		}
	}
	for _, tok := range q.RatingTokens {
		if r, ok := parseFinite(tok); ok {
			spec.MinRatings = append(spec.MinRatings, r)
		}
	}
	seen := make(map[string]bool, len(q.FacilityTokens))
	for _, tok := range q.FacilityTokens {
		f := strings.TrimSpace(tok)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		spec.Facilities = append(spec.Facilities, f)
	}
	return spec
}

// ParseContext extracts the non-filtering search context (dates, guests).
func ParseContext(q RawQuery) domain.SearchContext {
	return domain.SearchContext{
		Destination: strings.TrimSpace(q.Destination),
		Checkin:     strings.TrimSpace(q.Checkin),
		Checkout:    strings.TrimSpace(q.Checkout),
		Guests:      ParseGuests(q.Guests),
	}
}

// ParseSort maps a sort token to a SortKey; unknown tokens keep catalog order.
func ParseSort(tok string) domain.SortKey {
	switch strings.TrimSpace(tok) {
	case "priceAsc":
		return domain.SortPriceAsc
	case "priceDesc":
		return domain.SortPriceDesc
	case "ratingDesc":
		return domain.SortRatingDesc
	}
	return domain.SortNone
}

// ParseBand parses "min,max". An empty or infinite max is open-ended.
func ParseBand(tok string) (domain.Band, bool) {
	lo, hi, ok := strings.Cut(tok, ",")
	if !ok {
		return domain.Band{}, false
	}
	low, ok := parseFinite(lo)
	if !ok {
		return domain.Band{}, false
	}
	high := math.Inf(1)
	if hi = strings.TrimSpace(hi); hi != "" && hi != "+" {
		f, err := strconv.ParseFloat(hi, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, -1) {
			return domain.Band{}, false
		}
		high = f
	}
	if low > high {
		return domain.Band{}, false
	}
	return domain.Band{Min: low, Max: high}, true
}

// ParseGuests returns a positive guest count, defaulting to 1.
func ParseGuests(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
