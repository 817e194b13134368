package redisad

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"triply/internal/adapters/observability"
)

func NewClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

// Store is the durable key-value store: JSON values, no expiry, whole-value
// overwrite on Set. Keys are namespaced with prefix.
type Store struct {
	c      *redis.Client
	prefix string
}

func NewStore(c *redis.Client, prefix string) *Store { return &Store{c: c, prefix: prefix} }

func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := s.c.Get(ctx, s.prefix+key).Bytes()
	if err == redis.Nil {
		observability.ObserveStore("get", nil, false)
		return false, nil
	}
	observability.ObserveStore("get", err, true)
	if err != nil {
		return false, fmt.Errorf("store get %s: %w", key, err)
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return false, fmt.Errorf("store decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store encode %s: %w", key, err)
	}
	err = s.c.Set(ctx, s.prefix+key, b, 0).Err()
	observability.ObserveStore("set", err, true)
	if err != nil {
		return fmt.Errorf("store set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Del(ctx context.Context, key string) error {
	err := s.c.Del(ctx, s.prefix+key).Err()
	observability.ObserveStore("del", err, true)
	return err
}

// Ping checks connectivity at startup.
func (s *Store) Ping(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}
