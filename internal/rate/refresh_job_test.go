package rate

import (
	"context"
	"errors"
	"testing"

	"fxbot/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRefreshSnapshot_Success(t *testing.T) {
	source := new(MockRateSource)
	writer := new(MockSnapshotWriter)

	snap := usdSnapshot()
	source.On("FetchLatest", mock.Anything).Return(snap, nil).Once()
	writer.On("Save", mock.Anything, snap).Return(nil).Once()

	res, err := RefreshSnapshot(context.Background(), "exec-1", source, writer)

	require.NoError(t, err)
	require.Equal(t, RefreshResult{ExecID: "exec-1", Source: "primary", Codes: 1, FetchedAt: fixedFetchedAt}, res)
	source.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestRefreshSnapshot_FetchFailureKeepsOldSnapshot(t *testing.T) {
	source := new(MockRateSource)
	writer := new(MockSnapshotWriter)

	source.On("FetchLatest", mock.Anything).Return(domain.Snapshot{}, errors.New("both endpoints down")).Once()

	_, err := RefreshSnapshot(context.Background(), "exec-2", source, writer)

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to fetch rates")
	writer.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRefreshSnapshot_TableWithoutQuotesIsRejected(t *testing.T) {
	source := new(MockRateSource)
	writer := new(MockSnapshotWriter)

	junk := domain.NewSnapshot(fixedFetchedAt, "primary", map[string]string{"last_modified": "today"})
	source.On("FetchLatest", mock.Anything).Return(junk, nil).Once()

	_, err := RefreshSnapshot(context.Background(), "exec-3", source, writer)

	require.ErrorIs(t, err, domain.ErrEmptyRateTable)
	writer.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRefreshSnapshot_SaveFailure(t *testing.T) {
	source := new(MockRateSource)
	writer := new(MockSnapshotWriter)

	source.On("FetchLatest", mock.Anything).Return(usdSnapshot(), nil).Once()
	writer.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	res, err := RefreshSnapshot(context.Background(), "exec-4", source, writer)

	require.Error(t, err)
	require.Equal(t, "primary", res.Source)
}

func TestRefresher_Run_RecordsOutcome(t *testing.T) {
	source := new(MockRateSource)
	writer := new(MockSnapshotWriter)
	recorder := new(MockRefreshRecorder)

	source.On("FetchLatest", mock.Anything).Return(usdSnapshot(), nil).Once()
	writer.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	recorder.On("RecordRefresh", "primary", nil).Return().Once()

	res, err := NewRefresher(source, writer, recorder).Run(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, res.ExecID)
	require.Equal(t, 1, res.Codes)
	recorder.AssertExpectations(t)
}

func TestRefresher_Run_RecordsFailure(t *testing.T) {
	source := new(MockRateSource)
	writer := new(MockSnapshotWriter)
	recorder := new(MockRefreshRecorder)

	source.On("FetchLatest", mock.Anything).Return(domain.Snapshot{}, errors.New("timeout")).Once()
	recorder.On("RecordRefresh", "", mock.Anything).Return().Once()

	_, err := NewRefresher(source, writer, recorder).Run(context.Background())

	require.Error(t, err)
	recorder.AssertExpectations(t)
}
