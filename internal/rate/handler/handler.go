package handler

import (
	"context"
	"encoding/json"
	"fxbot/internal/rate"
	"net/http"
)

type RateService interface {
	GetByCode(ctx context.Context, code string) (rate.View, error)
	GetCodes(ctx context.Context) (rate.CodesView, error)
}

type SnapshotRefresher interface {
	Run(ctx context.Context) (rate.RefreshResult, error)
}

type Handler struct {
	service   RateService
	refresher SnapshotRefresher
}

func NewRateHandler(service RateService, refresher SnapshotRefresher) *Handler {
	return &Handler{service: service, refresher: refresher}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
