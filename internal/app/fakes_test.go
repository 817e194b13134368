package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"triply/internal/domain"
)

// ---- fakes ----

// memStore keeps JSON values so reads never alias what was written.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func (m *memStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (m *memStore) Set(ctx context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = b
	return nil
}

func (m *memStore) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type upsert struct {
	seq int
	h   domain.Hotel
}

type fakeRepo struct {
	hotels  []domain.Hotel
	upserts []upsert
	deletes []string
	err     error
}

func (f *fakeRepo) UpsertHotel(ctx context.Context, seq int, h domain.Hotel) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, upsert{seq, h})
	return nil
}

func (f *fakeRepo) DeleteHotel(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hotels, nil
}

type fakeFeed struct {
	recs []domain.FeedRecord
	err  error
}

func (f *fakeFeed) GetHotels(ctx context.Context) ([]domain.FeedRecord, error) {
	return f.recs, f.err
}

var errBoom = errors.New("boom")
