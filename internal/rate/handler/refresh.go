package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type RefreshResponse struct {
	ExecID    string    `json:"exec_id" example:"77b5d9f5-0569-47e3-aee2-f659d59fbd97"`
	Source    string    `json:"source" example:"primary"`
	Codes     int       `json:"codes" example:"42"`
	FetchedAt time.Time `json:"fetched_at" example:"2025-01-02T15:04:05Z"`
}

// Refresh godoc
// @Summary Refresh snapshot
// @Description Fetch the rate table now and replace the stored snapshot
// @Tags Snapshot
// @Produce json
// @Param X-Telegram-Bot-Api-Secret-Token header string false "Webhook secret"
// @Success 200 {object} RefreshResponse
// @Failure 401 {object} errorResponse
// @Failure 502 {object} errorResponse "provider unavailable, previous snapshot kept"
// @Router /snapshot/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	res, err := h.refresher.Run(r.Context())
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Refresh", "exec_id": res.ExecID}).Warn("manual refresh failed")
		writeError(w, http.StatusBadGateway, "failed to refresh rates, previous snapshot kept")
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{
		ExecID:    res.ExecID,
		Source:    res.Source,
		Codes:     res.Codes,
		FetchedAt: res.FetchedAt,
	})
}
