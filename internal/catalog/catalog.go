// Package catalog holds the hotel collection as an explicit value. Mutations
// return a new Catalog and leave the receiver untouched, so a caller can keep
// serving the old snapshot while it swaps in the new one.
package catalog

import (
	"fmt"
	"strings"

	"triply/internal/domain"
)

type Catalog struct {
	hotels []domain.Hotel
}

func New(hotels ...domain.Hotel) Catalog {
	c := Catalog{hotels: make([]domain.Hotel, len(hotels))}
	for i, h := range hotels {
		c.hotels[i] = h.Clone()
	}
	return c
}

func (c Catalog) Len() int { return len(c.hotels) }

// Hotels returns a copy of the records in insertion order.
func (c Catalog) Hotels() []domain.Hotel {
	out := make([]domain.Hotel, len(c.hotels))
	for i, h := range c.hotels {
		out[i] = h.Clone()
	}
	return out
}

func (c Catalog) Find(id string) (domain.Hotel, bool) {
	for _, h := range c.hotels {
		if h.ID == id {
			return h.Clone(), true
		}
	}
	return domain.Hotel{}, false
}

// NewHotel is the admin add-hotel form. Amenities and Facilities are comma
// lists; Rooms uses the "type:price;type:price" form understood by ParseRooms.
type NewHotel struct {
	Name        string  `json:"name"`
	Destination string  `json:"destination"`
	Location    string  `json:"location"`
	Rating      float64 `json:"rating"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Amenities   string  `json:"amenities"`
	Facilities  string  `json:"facilities"`
	Rooms       string  `json:"rooms"`
}

// NextID is the identifier AddHotel will assign: "H" + count+1, zero-padded to 3.
func NextID(c Catalog) string {
	return fmt.Sprintf("H%03d", c.Len()+1)
}

// FreeID is NextID, bumped past ids still held by earlier records. After a
// removal the count-based id can name a hotel that is still present.
func FreeID(c Catalog) string {
	for n := c.Len() + 1; ; n++ {
		id := fmt.Sprintf("H%03d", n)
		if _, taken := c.Find(id); !taken {
			return id
		}
	}
}

// AddHotel appends a record built from f. Malformed room entries are dropped.
func AddHotel(c Catalog, f NewHotel) (Catalog, domain.Hotel) {
	return AddHotelWithID(c, NextID(c), f)
}

func AddHotelWithID(c Catalog, id string, f NewHotel) (Catalog, domain.Hotel) {
	h := domain.Hotel{
		ID:          id,
		Name:        strings.TrimSpace(f.Name),
		Location:    strings.TrimSpace(f.Location),
		Destination: strings.TrimSpace(f.Destination),
		Rating:      f.Rating,
		Price:       f.Price,
		Reviews:     []domain.Review{},
		Images:      []string{DefaultImage},
		Description: strings.TrimSpace(f.Description),
		Rooms:       ParseRooms(f.Rooms),
		Amenities:   SplitList(f.Amenities),
		Facilities:  SplitList(f.Facilities),
		Map:         domain.Coords{},
	}
	next := Catalog{hotels: make([]domain.Hotel, 0, len(c.hotels)+1)}
	next.hotels = append(next.hotels, c.hotels...)
	next.hotels = append(next.hotels, h)
	return next, h.Clone()
}

// RemoveHotel drops the first record with the given id. Removing an unknown
// id is not an error; the result is simply equal to c.
func RemoveHotel(c Catalog, id string) Catalog {
	next := Catalog{hotels: make([]domain.Hotel, 0, len(c.hotels))}
	removed := false
	for _, h := range c.hotels {
		if !removed && h.ID == id {
			removed = true
			continue
		}
		next.hotels = append(next.hotels, h)
	}
	return next
}

// SplitList splits a comma list, trimming entries and dropping blanks.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

const DefaultImage = "hero.png"
