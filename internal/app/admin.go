package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"triply/internal/catalog"
	"triply/internal/domain"
)

// AddHotel validates the admin form, appends the hotel and persists it.
// The live catalog only changes once the repository write succeeded.
func (s *CatalogService) AddHotel(ctx context.Context, f catalog.NewHotel) (domain.Hotel, error) {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return domain.Hotel{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	case f.Price <= 0:
		return domain.Hotel{}, fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	case f.Rating < 0 || f.Rating > 5:
		return domain.Hotel{}, fmt.Errorf("%w: rating must be within 0..5", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, h := catalog.AddHotelWithID(s.cat, catalog.FreeID(s.cat), f)
	if s.repo != nil {
		if err := s.repo.UpsertHotel(ctx, s.nextSeq(), h); err != nil {
			return domain.Hotel{}, err
		}
	}
	s.cat = next
	s.invalidate(ctx, h.ID)
	log.Info().Str("id", h.ID).Str("name", h.Name).Int("rooms", len(h.Rooms)).Msg("hotel added")
	return h, nil
}

// RemoveHotel drops the hotel and its stored reviews; an unknown id is not
// an error. Reviews go too because FreeID may hand the id to a new hotel.
func (s *CatalogService) RemoveHotel(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.DeleteHotel(ctx, id); err != nil {
			return err
		}
	}
	s.cat = catalog.RemoveHotel(s.cat, id)
	s.invalidate(ctx, id)
	if s.store != nil {
		if err := s.store.Del(ctx, domain.ReviewsKey(id)); err != nil {
			return fmt.Errorf("drop reviews of %s: %w", id, err)
		}
	}
	return nil
}

// ListHotels is the admin table: every hotel in catalog order.
func (s *CatalogService) ListHotels(ctx context.Context) []domain.Hotel {
	return s.Snapshot().Hotels()
}

// nextSeq orders admin additions after everything already stored, including
// rows written before a restart. Callers hold s.mu.
func (s *CatalogService) nextSeq() int {
	seq := int(s.now().UnixMilli())
	if seq <= s.seq {
		seq = s.seq + 1
	}
	s.seq = seq
	return seq
}
