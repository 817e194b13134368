package domain

import "context"

// Store is the durable key-value persistence used for users, bookings,
// per-hotel reviews and preferences. Values are JSON; Set overwrites.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Del(ctx context.Context, key string) error
}

// Store keys.
const (
	KeyUsers    = "users"
	KeyBookings = "bookings"
	KeyLang     = "lang"
)

func ReviewsKey(hotelID string) string { return "reviews_" + hotelID }

type HotelRepository interface {
	UpsertHotel(ctx context.Context, seq int, h Hotel) error
	DeleteHotel(ctx context.Context, id string) error
	ListHotels(ctx context.Context) ([]Hotel, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// FeedRecord is one hotel object as served by a remote catalog feed. Field
// names vary between feeds, so it stays loosely typed until mapped.
type FeedRecord = map[string]any

type CatalogFeed interface {
	GetHotels(ctx context.Context) ([]FeedRecord, error)
}
