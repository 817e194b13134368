package domain

import "math"

type SortKey int

const (
	SortNone SortKey = iota
	SortPriceAsc
	SortPriceDesc
	SortRatingDesc
)

func (k SortKey) String() string {
	switch k {
	case SortPriceAsc:
		return "priceAsc"
	case SortPriceDesc:
		return "priceDesc"
	case SortRatingDesc:
		return "ratingDesc"
	}
	return ""
}

// Band is an inclusive price range. Max may be +Inf for "and up".
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (b Band) Contains(v float64) bool { return v >= b.Min && v <= b.Max }

func (b Band) OpenEnded() bool { return math.IsInf(b.Max, 1) }

// FilterSpec is a normalized set of listing constraints. Zero-value
// dimensions are unconstrained; dimensions combine with AND.
type FilterSpec struct {
	Destination string
	PriceBands  []Band    // any band
	MinRatings  []float64 // any threshold
	Facilities  []string  // all required
	Sort        SortKey
}

// SearchContext is the part of a query that doesn't filter the catalog but
// is carried to detail and booking links.
type SearchContext struct {
	Destination string `json:"dest"`
	Checkin     string `json:"checkin,omitempty"`
	Checkout    string `json:"checkout,omitempty"`
	Guests      int    `json:"guests"`
}
