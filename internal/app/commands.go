package app

import (
	"context"
	"errors"
	"fmt"

	"triply/internal/domain"
)

// ImportService writes feed records into the catalog repository.
type ImportService struct {
	feed  domain.CatalogFeed
	repo  domain.HotelRepository
	cache domain.Cache
}

func NewImportService(f domain.CatalogFeed, r domain.HotelRepository, cache domain.Cache) *ImportService {
	return &ImportService{feed: f, repo: r, cache: cache}
}

// Fetch pulls the full feed. A missing feed is reported as ErrNotFound so the
// caller can fall back to the built-in catalog.
func (s *ImportService) Fetch(ctx context.Context) ([]domain.FeedRecord, error) {
	recs, err := s.feed.GetHotels(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	return recs, nil
}

// ImportHotel maps and upserts one record at position seq (1-based). Records
// without an id get the catalog id for their position.
func (s *ImportService) ImportHotel(ctx context.Context, seq int, rec domain.FeedRecord) (domain.Hotel, error) {
	h, err := mapFeedHotel(rec)
	if err != nil {
		return domain.Hotel{}, err
	}
	if h.ID == "" {
		h.ID = fmt.Sprintf("H%03d", seq)
	}
	return h, s.Store(ctx, seq, h)
}

// Store upserts an already-built hotel and evicts its cached detail view.
func (s *ImportService) Store(ctx context.Context, seq int, h domain.Hotel) error {
	if err := s.repo.UpsertHotel(ctx, seq, h); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelCacheKey(h.ID))
	}
	return nil
}

func hotelCacheKey(id string) string { return "hotel:" + id }
