package catalog

import (
	"math"
	"sort"
	"strings"

	"triply/internal/domain"
)

type DestinationCount struct {
	Destination string `json:"destination"`
	Hotels      int    `json:"hotels"`
}

// Destinations lists each destination tag with its hotel count, in the order
// the tag first appears in the catalog.
func Destinations(c Catalog) []DestinationCount {
	out := []DestinationCount{}
	idx := map[string]int{}
	for _, h := range c.hotels {
		if i, ok := idx[h.Destination]; ok {
			out[i].Hotels++
			continue
		}
		idx[h.Destination] = len(out)
		out = append(out, DestinationCount{Destination: h.Destination, Hotels: 1})
	}
	return out
}

// Featured returns the n best-rated hotels; ties keep catalog order.
func Featured(c Catalog, n int) []domain.Hotel {
	hs := c.Hotels()
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Rating > hs[j].Rating })
	if n < 0 {
		n = 0
	}
	if n < len(hs) {
		hs = hs[:n]
	}
	return hs
}

// Facilities is the distinct facility set across the catalog, first-seen order.
func Facilities(c Catalog) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, h := range c.hotels {
		for _, f := range h.Facilities {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// Stars renders a rating as one ★ per whole point plus ½ for a fraction of .5 or more.
func Stars(rating float64) string {
	if rating <= 0 || math.IsNaN(rating) {
		return ""
	}
	full := math.Floor(rating)
	s := strings.Repeat("★", int(full))
	if rating-full >= 0.5 {
		s += "½"
	}
	return s
}
