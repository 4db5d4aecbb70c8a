package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guidebot-io/guidebot/internal/api/handlers"
	"github.com/guidebot-io/guidebot/internal/api/middleware"
)

type RouterConfig struct {
	ChatHandler   *handlers.ChatHandler
	HealthHandler *handlers.HealthHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 64 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", cfg.ChatHandler.Chat)
		r.Get("/health", cfg.HealthHandler.Health)
	})

	return r
}
