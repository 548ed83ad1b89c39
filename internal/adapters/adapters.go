package adapters

import (
	"context"
	"fxbot/internal/domain"
)

// Store is a flat key/value persistence. Put must replace the value atomically:
// concurrent readers see either the old or the new value in full.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type RateSource interface {
	FetchLatest(ctx context.Context) (domain.Snapshot, error)
}

type Notifier interface {
	SendMessage(ctx context.Context, msg domain.OutboundMessage) error
}

type SnapshotCache interface {
	Get() (domain.Snapshot, bool)
	Set(snap domain.Snapshot)
}
