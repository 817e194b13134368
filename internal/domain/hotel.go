package domain

type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Destination string   `json:"destination"`
	Rating      float64  `json:"rating"` // 0..5
	Price       float64  `json:"price"`  // nightly base price, > 0
	Reviews     []Review `json:"reviews"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Rooms       []Room   `json:"rooms"`
	Amenities   []string `json:"amenities"`
	Facilities  []string `json:"facilities"`
	Map         Coords   `json:"map"`
}

// Room is a bookable room type; Type is unique within its hotel.
type Room struct {
	Type         string  `json:"type"`
	Price        float64 `json:"price"`
	Availability int     `json:"availability"`
}

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HasFacility reports whether f is one of the hotel's facilities (exact match).
func (h Hotel) HasFacility(f string) bool {
	for _, x := range h.Facilities {
		if x == f {
			return true
		}
	}
	return false
}

// Room returns the room offering with the given type label.
func (h Hotel) Room(roomType string) (Room, bool) {
	for _, r := range h.Rooms {
		if r.Type == roomType {
			return r, true
		}
	}
	return Room{}, false
}

// Clone returns a deep copy so callers can't reach into a catalog's slices.
func (h Hotel) Clone() Hotel {
	out := h
	out.Reviews = cloneSlice(h.Reviews)
	out.Images = cloneSlice(h.Images)
	out.Rooms = cloneSlice(h.Rooms)
	out.Amenities = cloneSlice(h.Amenities)
	out.Facilities = cloneSlice(h.Facilities)
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
