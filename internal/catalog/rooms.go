package catalog

import (
	"math"
	"strconv"
	"strings"

	"triply/internal/domain"
)

// DefaultRoomAvailability is given to every room added through the admin form.
const DefaultRoomAvailability = 5

// ParseRooms reads the admin room list:
//
//	rooms = entry { ";" entry }
//	entry = type ":" price
//
// Blank entries and entries with an empty type, a missing ":" or a price that
// isn't a positive number are dropped; the rest are kept in order.
func ParseRooms(s string) []domain.Room {
	rooms := []domain.Room{}
	for _, entry := range strings.Split(s, ";") {
		r, ok := parseRoom(entry)
		if !ok {
			continue
		}
		rooms = append(rooms, r)
	}
	return rooms
}

func parseRoom(entry string) (domain.Room, bool) {
	typ, price, ok := strings.Cut(entry, ":")
	if !ok {
		return domain.Room{}, false
	}
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return domain.Room{}, false
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || p <= 0 || math.IsInf(p, 0) || math.IsNaN(p) {
		return domain.Room{}, false
	}
	return domain.Room{Type: typ, Price: p, Availability: DefaultRoomAvailability}, true
}

// FormatRooms renders rooms back into the form ParseRooms accepts.
func FormatRooms(rooms []domain.Room) string {
	parts := make([]string, len(rooms))
	for i, r := range rooms {
		parts[i] = r.Type + ":" + strconv.FormatFloat(r.Price, 'f', -1, 64)
	}
	return strings.Join(parts, ";")
}
