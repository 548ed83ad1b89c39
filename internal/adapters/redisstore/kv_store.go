package redisstore

import (
	"context"
	"errors"
	"fmt"
	"fxbot/internal/domain"

	"github.com/redis/go-redis/v9"
)

// KVStore keeps values under prefix+key. SET replaces a value atomically.
type KVStore struct {
	client *redis.Client
	prefix string
}

func (s *KVStore) key(key string) string { return s.prefix + key }

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value for key %q: %w", key, err)
	}
	return val, nil
}

func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set value for key %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *KVStore) Close() error { return s.client.Close() }

func NewKVStore(opt *redis.Options, prefix string) *KVStore {
	return &KVStore{client: redis.NewClient(opt), prefix: prefix}
}
