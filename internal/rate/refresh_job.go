package rate

import (
	"context"
	"fmt"
	"fxbot/internal/adapters"
	"fxbot/internal/domain"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const refreshTimeout = 30 * time.Second

type SnapshotWriter interface {
	Save(ctx context.Context, snap domain.Snapshot) error
}

type RefreshRecorder interface {
	RecordRefresh(source string, err error)
}

type RefreshResult struct {
	ExecID    string
	Source    string
	Codes     int
	FetchedAt time.Time
}

// RefreshSnapshot fetches a fresh table and replaces the stored snapshot. On any
// failure the previous snapshot stays in place.
func RefreshSnapshot(ctx context.Context, execID string, source adapters.RateSource, snapshots SnapshotWriter) (RefreshResult, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	// STEP 1: fetching from the provider (primary, then fallback)
	snap, err := source.FetchLatest(fetchCtx)
	if err != nil {
		return RefreshResult{ExecID: execID}, fmt.Errorf("failed to fetch rates: %w", err)
	}

	// STEP 2: a table without a single quote field would wipe out good data
	codes := snap.Codes()
	if len(codes) == 0 {
		return RefreshResult{ExecID: execID, Source: snap.Source}, domain.ErrEmptyRateTable
	}

	// STEP 3: replacing the stored snapshot as a whole
	if err = snapshots.Save(ctx, snap); err != nil {
		return RefreshResult{ExecID: execID, Source: snap.Source}, err
	}

	return RefreshResult{ExecID: execID, Source: snap.Source, Codes: len(codes), FetchedAt: snap.FetchedAt}, nil
}

type Refresher struct {
	source    adapters.RateSource
	snapshots SnapshotWriter
	recorder  RefreshRecorder
}

func (r *Refresher) Run(ctx context.Context) (RefreshResult, error) {
	execID := uuid.NewString()
	res, err := RefreshSnapshot(ctx, execID, r.source, r.snapshots)
	if r.recorder != nil {
		r.recorder.RecordRefresh(res.Source, err)
	}
	if err != nil {
		return res, err
	}
	logrus.Infof("Snapshot refreshed from %s with %d codes; execID: %s", res.Source, res.Codes, execID)
	return res, nil
}

func NewRefresher(source adapters.RateSource, snapshots SnapshotWriter, recorder RefreshRecorder) *Refresher {
	return &Refresher{source: source, snapshots: snapshots, recorder: recorder}
}
