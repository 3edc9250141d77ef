/*
server.go - HTTP router configuration

PURPOSE:
  Wires URLs to handlers with chi. The surface is meant for a local UI
  shell on the same device; CORS is limited to localhost dev origins.

ROUTE GROUPS:
  /api/health                          Readiness probe
  /api/workers                         Worker profiles
  /api/workers/active                  Active worker selection
  /api/workers/{kind}/days/{date}      Day status get/set
  /api/workers/{kind}/settings         Partial settings update
  /api/workers/{kind}/payments         Payment log append
  /api/workers/{kind}/balance          Month balance with carry-forward
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

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/workers", func(r chi.Router) {
			r.Get("/", h.ListWorkers)
			r.Get("/active", h.GetActiveWorker)
			r.Put("/active", h.SetActiveWorker)

			r.Route("/{kind}", func(r chi.Router) {
				r.Get("/", h.GetWorker)
				r.Get("/days/{date}", h.GetDayStatus)
				r.Put("/days/{date}", h.SetDayStatus)
				r.Patch("/settings", h.UpdateSettings)
				r.Post("/payments", h.RecordPayment)
				r.Get("/balance", h.GetBalance)
			})
		})
	})

	return r
}
