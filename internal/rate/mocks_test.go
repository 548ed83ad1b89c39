package rate

import (
	"context"

	"fxbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- Testify mocks ---

type MockSnapshotReader struct{ mock.Mock }

func (m *MockSnapshotReader) Latest(ctx context.Context) (domain.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(domain.Snapshot)
	return snap, args.Error(1)
}

type MockSnapshotWriter struct{ mock.Mock }

func (m *MockSnapshotWriter) Save(ctx context.Context, snap domain.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

type MockStore struct{ mock.Mock }

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *MockStore) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type MockSnapshotCache struct{ mock.Mock }

func (m *MockSnapshotCache) Get() (domain.Snapshot, bool) {
	args := m.Called()
	snap, _ := args.Get(0).(domain.Snapshot)
	return snap, args.Bool(1)
}

func (m *MockSnapshotCache) Set(snap domain.Snapshot) {
	m.Called(snap)
}

type MockRateSource struct{ mock.Mock }

func (m *MockRateSource) FetchLatest(ctx context.Context) (domain.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(domain.Snapshot)
	return snap, args.Error(1)
}

type MockRefreshRecorder struct{ mock.Mock }

func (m *MockRefreshRecorder) RecordRefresh(source string, err error) {
	m.Called(source, err)
}

type MockRunner struct{ mock.Mock }

func (m *MockRunner) Run(ctx context.Context) (RefreshResult, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(RefreshResult)
	return res, args.Error(1)
}
