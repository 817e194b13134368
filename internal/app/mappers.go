package app

import (
	"fmt"
	"strconv"
	"strings"

	"triply/internal/catalog"
	"triply/internal/domain"
)

/********** alias registries (single source of truth) **********/

var hotelAliases = map[string][]string{
	"id":          {"id", "hotel_id", "hotelId", "code"},
	"name":        {"name", "hotel_name", "hotelName", "title"},
	"location":    {"location", "address", "address.line", "full_address"},
	"destination": {"destination", "city", "address.city", "region"},
	"description": {"description", "summary", "about"},
	"price":       {"price", "price_per_night", "nightly_rate", "rate.amount"},
	"rating":      {"rating", "stars", "score", "rating.value"},
	"lat":         {"map.lat", "lat", "latitude", "location.lat", "coords.lat"},
	"lng":         {"map.lng", "lng", "lon", "longitude", "location.lng", "coords.lng"},
}

var reviewAliases = map[string][]string{
	"user":    {"user", "author", "name", "reviewer", "reviewer.name"},
	"comment": {"comment", "text", "review", "content", "body"},
	"rating":  {"rating", "score", "stars"},
}

var roomAliases = map[string][]string{
	"type":         {"type", "name", "room_type", "roomType"},
	"price":        {"price", "rate", "price_per_night"},
	"availability": {"availability", "available", "count"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// firstString: first non-empty trimmed string for a named alias set.
func firstString(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// firstFloat: number from several paths (float64/int/string like "8,5").
func firstFloat(m map[string]any, aliases map[string][]string, key string) (float64, bool) {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// stringSlice: accept []any with either strings or {url/src/name}, or a
// comma list.
func stringSlice(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		switch raw := lookupAny(m, k).(type) {
		case string:
			if out := catalog.SplitList(raw); len(out) > 0 {
				return out
			}
		case []any:
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if s := strings.TrimSpace(t); s != "" {
						out = append(out, s)
					}
				case map[string]any:
					for _, f := range []string{"url", "src", "name"} {
						if u, ok := t[f].(string); ok && u != "" {
							out = append(out, u)
							break
						}
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return []string{}
}

func objects(m map[string]any, paths ...string) []map[string]any {
	for _, k := range paths {
		raw, ok := lookupAny(m, k).([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(raw))
		for _, it := range raw {
			if obj, ok := it.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

/********** hotel mapper **********/

// mapFeedHotel turns a feed record into a catalog hotel. Records without a
// name or a positive price are rejected; the rest is best-effort.
func mapFeedHotel(rec domain.FeedRecord) (domain.Hotel, error) {
	h := domain.Hotel{
		ID:          firstString(rec, hotelAliases, "id"),
		Name:        firstString(rec, hotelAliases, "name"),
		Location:    firstString(rec, hotelAliases, "location"),
		Destination: firstString(rec, hotelAliases, "destination"),
		Description: firstString(rec, hotelAliases, "description"),
		Reviews:     mapFeedReviews(objects(rec, "reviews")),
		Images:      stringSlice(rec, "images", "photos"),
		Rooms:       mapFeedRooms(rec),
		Amenities:   stringSlice(rec, "amenities"),
		Facilities:  stringSlice(rec, "facilities", "features"),
	}
	if h.Name == "" {
		return domain.Hotel{}, fmt.Errorf("%w: feed hotel %q has no name", domain.ErrValidation, h.ID)
	}
	price, ok := firstFloat(rec, hotelAliases, "price")
	if !ok || price <= 0 {
		return domain.Hotel{}, fmt.Errorf("%w: feed hotel %q has no price", domain.ErrValidation, h.Name)
	}
	h.Price = price
	if r, ok := firstFloat(rec, hotelAliases, "rating"); ok {
		h.Rating = clamp(r, 0, 5)
	}
	h.Map.Lat, _ = firstFloat(rec, hotelAliases, "lat")
	h.Map.Lng, _ = firstFloat(rec, hotelAliases, "lng")
	return h, nil
}

/********** reviews mapper **********/

func mapFeedReviews(in []map[string]any) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		rv := domain.Review{
			User:    firstString(r, reviewAliases, "user"),
			Comment: firstString(r, reviewAliases, "comment"),
		}
		if rv.Comment == "" {
			continue
		}
		if rv.User == "" {
			rv.User = domain.User{}.DisplayName()
		}
		if f, ok := firstFloat(r, reviewAliases, "rating"); ok {
			rv.Rating = int(clamp(f, 1, 5))
		} else {
			rv.Rating = 5
		}
		if !containsReview(out, rv) {
			out = append(out, rv)
		}
	}
	return out
}

func containsReview(list []domain.Review, rv domain.Review) bool {
	for _, x := range list {
		if x.SameAs(rv) {
			return true
		}
	}
	return false
}

/********** rooms mapper **********/

// mapFeedRooms accepts either a list of room objects or the admin
// "type:price;type:price" string.
func mapFeedRooms(rec domain.FeedRecord) []domain.Room {
	if s, ok := rec["rooms"].(string); ok {
		return catalog.ParseRooms(s)
	}
	out := []domain.Room{}
	seen := map[string]bool{}
	for _, r := range objects(rec, "rooms") {
		room := domain.Room{Type: firstString(r, roomAliases, "type")}
		price, ok := firstFloat(r, roomAliases, "price")
		if room.Type == "" || !ok || price <= 0 || seen[room.Type] {
			continue
		}
		room.Price = price
		room.Availability = catalog.DefaultRoomAvailability
		if n, ok := firstFloat(r, roomAliases, "availability"); ok && n >= 0 {
			room.Availability = int(n)
		}
		seen[room.Type] = true
		out = append(out, room)
	}
	return out
}
