package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phuslu/log"
	"github.com/stackdesk/faqd/internal/api"
	"github.com/stackdesk/faqd/internal/api/handlers"
	"github.com/stackdesk/faqd/internal/api/middleware"
)

type RouterConfig struct {
	AskHandler     *handlers.AskHandler
	SuggestHandler *handlers.SuggestHandler
	StatusHandler  *handlers.StatusHandler
	SyncHandler    *handlers.SyncHandler
	MetricsHandler *handlers.MetricsHandler
	Logger         *log.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog(cfg.Logger))
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/ask", cfg.AskHandler.Ask)
		r.Post("/suggest", cfg.SuggestHandler.Suggest)

		r.Route("/status/events", func(r chi.Router) {
			r.Post("/", cfg.StatusHandler.Ingest)
			r.Get("/", cfg.StatusHandler.List)
		})

		r.Post("/sync", cfg.SyncHandler.Sync)
		r.Get("/metrics", cfg.MetricsHandler.Get)
	})

	return r
}
