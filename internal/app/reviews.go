package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"triply/internal/domain"
)

type ReviewService struct {
	mu      sync.Mutex
	catalog *CatalogService
	store   domain.Store
}

func NewReviewService(c *CatalogService, st domain.Store) *ReviewService {
	return &ReviewService{catalog: c, store: st}
}

// Add appends a review written by user to the hotel's stored reviews.
func (s *ReviewService) Add(ctx context.Context, hotelID string, user domain.User, rating int, comment string) (domain.Review, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return domain.Review{}, fmt.Errorf("%w: comment is required", domain.ErrValidation)
	}
	if rating < 1 || rating > 5 {
		return domain.Review{}, fmt.Errorf("%w: rating must be within 1..5", domain.ErrValidation)
	}
	if _, ok := s.catalog.Snapshot().Find(hotelID); !ok {
		return domain.Review{}, fmt.Errorf("%w: hotel %s", domain.ErrNotFound, hotelID)
	}

	rv := domain.Review{User: user.DisplayName(), Rating: rating, Comment: comment}
	key := domain.ReviewsKey(hotelID)

	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := loadList[domain.Review](ctx, s.store, key)
	if err != nil {
		return domain.Review{}, err
	}
	if err := s.store.Set(ctx, key, append(list, rv)); err != nil {
		return domain.Review{}, fmt.Errorf("save %s: %w", key, err)
	}
	s.catalog.invalidate(ctx, hotelID)
	return rv, nil
}
