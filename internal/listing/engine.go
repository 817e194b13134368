package listing

import (
	"sort"
	"strings"

	"triply/internal/domain"
)

// Apply filters and orders hotels according to spec. The input is never
// modified; the result is a fresh slice (empty, not nil, when nothing matches).
// Sorting is stable so equal keys keep catalog order.
func Apply(hotels []domain.Hotel, spec domain.FilterSpec) []domain.Hotel {
	dest := strings.ToLower(spec.Destination)

	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if dest != "" && !strings.Contains(strings.ToLower(h.Destination), dest) {
			continue
		}
		if !inAnyBand(h.Price, spec.PriceBands) {
			continue
		}
		if !meetsAnyRating(h.Rating, spec.MinRatings) {
			continue
		}
		if !hasAll(h, spec.Facilities) {
			continue
		}
		out = append(out, h)
	}

	switch spec.Sort {
	case domain.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case domain.SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

func inAnyBand(price float64, bands []domain.Band) bool {
	if len(bands) == 0 {
		return true
	}
	for _, b := range bands {
		if b.Contains(price) {
			return true
		}
	}
	return false
}

func meetsAnyRating(rating float64, mins []float64) bool {
	if len(mins) == 0 {
		return true
	}
	for _, m := range mins {
		if rating >= m {
			return true
		}
	}
	return false
}

func hasAll(h domain.Hotel, facilities []string) bool {
	for _, f := range facilities {
		if !h.HasFacility(f) {
			return false
		}
	}
	return true
}
