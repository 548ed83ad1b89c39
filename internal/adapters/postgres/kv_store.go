package postgres

import (
	"context"
	"errors"
	"fmt"
	"fxbot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type KVStore struct {
	pool *pgxpool.Pool
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `select value from kv_store where key = $1;`

	var value []byte
	if err := s.pool.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to select value for key %q: %w", key, err)
	}
	return value, nil
}

// Put replaces the value in a single statement, so readers never observe a partial write.
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		insert into kv_store (key, value, updated_at) values ($1, $2, now())
		on conflict (key) do update
		set value = excluded.value, updated_at = now();
	`

	if _, err := s.pool.Exec(ctx, q, key, value); err != nil {
		return fmt.Errorf("failed to upsert value for key %q: %w", key, err)
	}
	return nil
}

func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return &KVStore{pool: pool}
}
