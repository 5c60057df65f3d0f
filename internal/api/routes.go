package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Get("/health", h.Health)

		// Protected routes (auth required)
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(h.apiKey))

			r.Get("/periods/current", h.CurrentPeriod)
			r.Route("/periods/{periodID}", func(r chi.Router) {
				r.Get("/", h.GetPeriod)
				r.Put("/header", h.UpdateHeader)
				r.Get("/children", h.ChildPeriods)
				r.Get("/summary", h.PeriodSummary)

				r.Post("/items", h.AddItem)
				r.Route("/items/{itemID}", func(r chi.Router) {
					r.Patch("/", h.UpdateItem)
					r.Delete("/", h.DeleteItem)
					r.Post("/toggle", h.ToggleItem)
					r.Post("/assign", h.AssignItem)
				})

				r.Get("/record", h.GetRecord)
				r.Put("/record", h.UpdateRecord)
			})

			r.Get("/search", h.Search)

			r.Get("/events", h.ListEvents)
			r.Post("/events", h.AddEvent)
			r.Delete("/events/{eventID}", h.DeleteEvent)
		})
	})

	return r
}
