package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/alex-user-go/hotel-aggregator/internal/middleware"
	"github.com/alex-user-go/hotel-aggregator/internal/obs"
)

// NewRouter wires the API, health and metrics endpoints.
func NewRouter(h *Handler, metrics *obs.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(metrics.Middleware)
	r.Use(chimw.Recoverer)

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Get("/healthz", obs.HealthHandler(logger))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/hotels", func(r chi.Router) {
		r.Get("/search", h.Search)
		r.Delete("/cache", h.FlushCache)
	})

	return r
}
