package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-save-keeper/internal/metrics"
)

// Init builds the router of the progress API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		r.Handle("/metrics", metrics.Handler())
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.With(h.snapshotHashing).Post("/api/progress/", h.saveProgress)
		r.With(h.deltaHashing).Post("/api/progress/delta", h.saveDelta)
		r.Get("/api/progress/", h.loadProgress)
		r.Get("/api/progress/meta", h.loadMeta)
		r.Delete("/api/progress/", h.deleteProgress)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
