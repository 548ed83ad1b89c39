package handler

import (
	"errors"
	"fxbot/internal/domain"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type GetCodesResponse struct {
	Codes     []string  `json:"codes" example:"eur,gbp,usd"`
	Count     int       `json:"count" example:"3"`
	FetchedAt time.Time `json:"fetched_at" example:"2025-01-02T15:04:05Z"`
}

// GetCodes godoc
// @Summary List available codes
// @Description Retrieve every code with a complete sell and buy quote in the latest snapshot
// @Tags Rates
// @Produce json
// @Success 200 {object} GetCodesResponse
// @Failure 503 {object} errorResponse "rates are not loaded yet"
// @Failure 500 {object} errorResponse
// @Router /rates [get]
func (h *Handler) GetCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.service.GetCodes(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			writeError(w, http.StatusServiceUnavailable, "rates are not loaded yet")
			return
		}
		msg := "ups, couldn't list codes this time"
		logrus.WithError(err).WithField("handler", "GetCodes").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetCodesResponse{
		Codes:     codes.Codes,
		Count:     len(codes.Codes),
		FetchedAt: codes.FetchedAt,
	})
}
