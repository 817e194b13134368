package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"triply/internal/catalog"
	"triply/internal/domain"
	"triply/internal/listing"
)

// CatalogService owns the live catalog. Reads take a snapshot under the read
// lock; admin mutations build a new Catalog and swap it in.
type CatalogService struct {
	mu  sync.RWMutex
	cat catalog.Catalog
	seq int

	repo     domain.HotelRepository // nil: built-in catalog, no persistence
	store    domain.Store
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewCatalogService(r domain.HotelRepository, st domain.Store, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: r, store: st, cache: c, cacheTTL: ttl, now: time.Now}
}

// Load replaces the live catalog with the repository contents, or with the
// built-in seed when there is no repository.
func (s *CatalogService) Load(ctx context.Context) error {
	next := catalog.Seed()
	if s.repo != nil {
		hs, err := s.repo.ListHotels(ctx)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		next = catalog.New(hs...)
	}
	s.mu.Lock()
	s.cat = next
	s.mu.Unlock()
	log.Info().Int("hotels", next.Len()).Bool("persistent", s.repo != nil).Msg("catalog loaded")
	return nil
}

func (s *CatalogService) Snapshot() catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

type SearchResult struct {
	Context domain.SearchContext `json:"context"`
	Sort    string               `json:"sort,omitempty"`
	Count   int                  `json:"count"`
	Hotels  []domain.Hotel       `json:"hotels"`
	Spec    domain.FilterSpec    `json:"-"`
}

// Search parses q and runs the listing over the current catalog.
func (s *CatalogService) Search(ctx context.Context, q listing.RawQuery) SearchResult {
	spec := listing.ParseQuery(q)
	hotels := listing.Apply(s.Snapshot().Hotels(), spec)
	return SearchResult{
		Context: listing.ParseContext(q),
		Sort:    spec.Sort.String(),
		Count:   len(hotels),
		Hotels:  hotels,
		Spec:    spec,
	}
}

// GetHotel returns the hotel with its stored reviews merged in. The live
// catalog decides existence; the cache may outlive a reload or a restart.
func (s *CatalogService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	h, ok := s.Snapshot().Find(id)
	if !ok {
		return domain.Hotel{}, fmt.Errorf("%w: hotel %s", domain.ErrNotFound, id)
	}

	key := hotelCacheKey(id)
	if s.cache != nil {
		var cached domain.Hotel
		if ok, _ := s.cache.Get(ctx, key, &cached); ok && cached.ID == h.ID && cached.Name == h.Name {
			return cached, nil
		}
	}

	stored, err := s.storedReviews(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	h.Reviews = catalog.MergeReviews(h.Reviews, stored)

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

func (s *CatalogService) Reviews(ctx context.Context, id string) ([]domain.Review, error) {
	h, err := s.GetHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	return h.Reviews, nil
}

func (s *CatalogService) Destinations(ctx context.Context) []catalog.DestinationCount {
	return catalog.Destinations(s.Snapshot())
}

func (s *CatalogService) Featured(ctx context.Context, n int) []domain.Hotel {
	return catalog.Featured(s.Snapshot(), n)
}

func (s *CatalogService) Facilities(ctx context.Context) []string {
	return catalog.Facilities(s.Snapshot())
}

func (s *CatalogService) storedReviews(ctx context.Context, id string) ([]domain.Review, error) {
	if s.store == nil {
		return nil, nil
	}
	return loadList[domain.Review](ctx, s.store, domain.ReviewsKey(id))
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelCacheKey(id))
	}
}

// loadList reads a JSON list from the store; an absent key is an empty list.
func loadList[T any](ctx context.Context, st domain.Store, key string) ([]T, error) {
	var out []T
	if _, err := st.Get(ctx, key, &out); err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
