package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/session", h.createSession)
		r.Get("/api/public/{address}/*", h.getPublicObject)
		r.Get("/api/version", h.getServerVersion)
		r.Method("GET", "/metrics", promhttp.Handler())
	})

	// routes guarded by a session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/spaces/{space}/objects", h.listObjects)
		r.Put("/api/spaces/{space}/objects/*", h.saveObject)
		r.Get("/api/spaces/{space}/objects/*", h.getObject)
		r.Delete("/api/spaces/{space}/objects/*", h.deleteObject)

		r.Put("/api/public/{address}/*", h.savePublicObject)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
