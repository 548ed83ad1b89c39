package cache

import (
	"fmt"
	"fxbot/internal/domain"
	"time"

	"github.com/dgraph-io/ristretto"
)

const latestKey = "snapshot:latest"

// RistrettoSnapshotCache keeps the decoded latest snapshot for a short TTL so
// webhook requests don't hit the store on every message.
type RistrettoSnapshotCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewSnapshotCache(maxItems int64, ttl time.Duration) (*RistrettoSnapshotCache, error) {
	if maxItems <= 0 {
		maxItems = 16
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create snapshot cache failed: %w", err)
	}
	return &RistrettoSnapshotCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoSnapshotCache) Get() (domain.Snapshot, bool) {
	if v, ok := c.cache.Get(latestKey); ok {
		snap, ok := v.(domain.Snapshot)
		return snap, ok
	}
	return domain.Snapshot{}, false
}

func (c *RistrettoSnapshotCache) Set(snap domain.Snapshot) {
	if c.ttl > 0 {
		c.cache.SetWithTTL(latestKey, snap, 1, c.ttl)
	} else {
		c.cache.Set(latestKey, snap, 1)
	}
	// make the new snapshot visible to the next Get right away
	c.cache.Wait()
}

func (c *RistrettoSnapshotCache) Close() { c.cache.Close() }
