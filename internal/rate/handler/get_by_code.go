package handler

import (
	"errors"
	"fxbot/internal/domain"
	"fxbot/internal/rate"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type GetByCodeResponse struct {
	Code      string          `json:"code" example:"usd"`
	Sell      decimal.Decimal `json:"sell" swaggertype:"string" example:"50000"`
	Buy       decimal.Decimal `json:"buy" swaggertype:"string" example:"49500"`
	FetchedAt time.Time       `json:"fetched_at" example:"2025-01-02T15:04:05Z"`
}

// GetByCode godoc
// @Summary Get rate by code
// @Description Get sell and buy quotes for a code or a known alias (e.g. usd, دلار)
// @Tags Rates
// @Produce json
// @Param code path string true "Currency code or alias"
// @Success 200 {object} GetByCodeResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 503 {object} errorResponse "rates are not loaded yet"
// @Failure 500 {object} errorResponse
// @Router /rates/{code} [get]
func (h *Handler) GetByCode(w http.ResponseWriter, r *http.Request) {
	raw, err := url.PathUnescape(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, rate.ErrCodeMalformed.Error())
		return
	}
	code := rate.ResolveCode(rate.Normalize(raw))

	if err = rate.ValidateCode(code); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateNotFound):
			writeError(w, http.StatusNotFound, "rate not found")
		case errors.Is(err, domain.ErrSnapshotNotFound):
			writeError(w, http.StatusServiceUnavailable, "rates are not loaded yet")
		default:
			msg := "ups, couldn't get rate by code this time"
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetByCode", "code": code}).Error(msg)
			writeError(w, http.StatusInternalServerError, msg)
		}
		return
	}

	writeJSON(w, http.StatusOK, GetByCodeResponse{
		Code:      view.Code,
		Sell:      view.Sell,
		Buy:       view.Buy,
		FetchedAt: view.FetchedAt,
	})
}
