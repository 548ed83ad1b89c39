package memory

import (
	"context"
	"fxbot/internal/domain"
	"sync"
)

// KVStore is a process-local store for development and tests.
type KVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *KVStore) Put(_ context.Context, key string, value []byte) error {
	cp := append([]byte(nil), value...)
	s.mu.Lock()
	s.data[key] = cp
	s.mu.Unlock()
	return nil
}

func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string][]byte)}
}
