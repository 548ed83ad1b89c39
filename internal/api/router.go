package api

import (
	_ "fxbot/docs"
	"fxbot/internal/chat"
	"fxbot/internal/rate/handler"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

// NewRouter mounts the Telegram webhook, the JSON API and the operational endpoints.
// Both mutating routes sit behind the webhook secret.
func NewRouter(rateHandler *handler.Handler, webhook *chat.Webhook, metrics http.Handler, webhookSecret string) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Method(http.MethodGet, "/metrics", metrics)

	router.Group(func(r chi.Router) {
		r.Use(chat.RequireSecret(webhookSecret))
		r.Post("/webhook/telegram", webhook.Handle)
		r.Post("/api/v1/snapshot/refresh", rateHandler.Refresh)
	})

	router.Get("/api/v1/rates", rateHandler.GetCodes)
	router.Get("/api/v1/rates/{code}", rateHandler.GetByCode)
	return router
}
