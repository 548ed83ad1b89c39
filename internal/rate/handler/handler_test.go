package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fxbot/internal/domain"
	"fxbot/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) GetByCode(ctx context.Context, code string) (rate.View, error) {
	args := m.Called(ctx, code)
	v, _ := args.Get(0).(rate.View)
	return v, args.Error(1)
}

func (m *MockService) GetCodes(ctx context.Context) (rate.CodesView, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(rate.CodesView)
	return v, args.Error(1)
}

type MockRefresher struct{ mock.Mock }

func (m *MockRefresher) Run(ctx context.Context) (rate.RefreshResult, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(rate.RefreshResult)
	return res, args.Error(1)
}

type errorJSON struct {
	Error string `json:"error"`
}

var fetchedAt = time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

func newCodeRequest(code string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/rates/x", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("code", code)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// --- GetByCode ---

func TestHandler_GetByCode_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		code    string
		wantMsg string
	}{
		{name: "empty", code: "  ", wantMsg: rate.ErrCodeRequired.Error()},
		{name: "one letter", code: "u", wantMsg: rate.ErrCodeMalformed.Error()},
		{name: "unknown script", code: "سکه", wantMsg: rate.ErrCodeMalformed.Error()},
		{name: "bad escape", code: "%zz", wantMsg: rate.ErrCodeMalformed.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockService)
			h := NewRateHandler(mockService, new(MockRefresher))
			rr := httptest.NewRecorder()

			h.GetByCode(rr, newCodeRequest(tc.code))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, tc.wantMsg, ej.Error)
			mockService.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_GetByCode_ServiceErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", err: domain.ErrRateNotFound, wantStatus: http.StatusNotFound, wantMsg: "rate not found"},
		{name: "no snapshot", err: domain.ErrSnapshotNotFound, wantStatus: http.StatusServiceUnavailable, wantMsg: "rates are not loaded yet"},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMsg: "ups, couldn't get rate by code this time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockService)
			h := NewRateHandler(mockService, new(MockRefresher))
			rr := httptest.NewRecorder()

			mockService.On("GetByCode", mock.Anything, "eur").Return(rate.View{}, tc.err).Once()

			h.GetByCode(rr, newCodeRequest("EUR"))

			require.Equal(t, tc.wantStatus, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, tc.wantMsg, ej.Error)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_GetByCode_ResolvesAlias(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, new(MockRefresher))
	rr := httptest.NewRecorder()

	view := rate.View{Code: "usd", Sell: decimal.NewFromInt(50000), Buy: decimal.NewFromInt(49500), FetchedAt: fetchedAt}
	mockService.On("GetByCode", mock.Anything, "usd").Return(view, nil).Once()

	h.GetByCode(rr, newCodeRequest("%D8%AF%D9%84%D8%A7%D8%B1"))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var res GetByCodeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "usd", res.Code)
	require.True(t, decimal.NewFromInt(50000).Equal(res.Sell))
	require.True(t, decimal.NewFromInt(49500).Equal(res.Buy))
	require.True(t, res.FetchedAt.Equal(fetchedAt))
	mockService.AssertExpectations(t)
}

// --- GetCodes ---

func TestHandler_GetCodes_Success(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, new(MockRefresher))

	mockService.On("GetCodes", mock.Anything).Return(rate.CodesView{Codes: []string{"eur", "usd"}, FetchedAt: fetchedAt}, nil).Once()

	rr := httptest.NewRecorder()
	h.GetCodes(rr, httptest.NewRequest(http.MethodGet, "/rates", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp GetCodesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, []string{"eur", "usd"}, resp.Codes)
	require.Equal(t, 2, resp.Count)
	require.True(t, resp.FetchedAt.Equal(fetchedAt))
	mockService.AssertExpectations(t)
}

func TestHandler_GetCodes_NoSnapshot(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, new(MockRefresher))

	mockService.On("GetCodes", mock.Anything).Return(rate.CodesView{}, domain.ErrSnapshotNotFound).Once()

	rr := httptest.NewRecorder()
	h.GetCodes(rr, httptest.NewRequest(http.MethodGet, "/rates", nil))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHandler_GetCodes_InternalError(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, new(MockRefresher))

	mockService.On("GetCodes", mock.Anything).Return(rate.CodesView{}, errors.New("db failed")).Once()

	rr := httptest.NewRecorder()
	h.GetCodes(rr, httptest.NewRequest(http.MethodGet, "/rates", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "ups, couldn't list codes this time", ej.Error)
}

// --- Refresh ---

func TestHandler_Refresh_Success(t *testing.T) {
	mockRefresher := new(MockRefresher)
	h := NewRateHandler(new(MockService), mockRefresher)

	res := rate.RefreshResult{ExecID: "exec-1", Source: "fallback", Codes: 12, FetchedAt: fetchedAt}
	mockRefresher.On("Run", mock.Anything).Return(res, nil).Once()

	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/snapshot/refresh", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp RefreshResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "exec-1", resp.ExecID)
	require.Equal(t, "fallback", resp.Source)
	require.Equal(t, 12, resp.Codes)
	mockRefresher.AssertExpectations(t)
}

func TestHandler_Refresh_Failure(t *testing.T) {
	mockRefresher := new(MockRefresher)
	h := NewRateHandler(new(MockService), mockRefresher)

	mockRefresher.On("Run", mock.Anything).Return(rate.RefreshResult{ExecID: "exec-2"}, errors.New("both endpoints down")).Once()

	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/snapshot/refresh", nil))

	require.Equal(t, http.StatusBadGateway, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "failed to refresh rates, previous snapshot kept", ej.Error)
}
