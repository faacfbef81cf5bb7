/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/roster", func(r chi.Router) {
			r.Get("/", h.GetRoster)
			r.Get("/{id}/calendar/{year}/{month}", h.GetCalendar)
		})

		r.Route("/costs", func(r chi.Router) {
			r.Get("/trend", h.GetTrend)
			r.Get("/by-client", h.GetByClient)
			r.Get("/by-trade", h.GetByTrade)
			r.Get("/matrix/{year}/{month}", h.GetMatrix)
			r.Get("/{year}/{month}", h.GetMonthCosts)
		})

		r.Post("/seed", h.LoadSeed)
	})

	return r
}
