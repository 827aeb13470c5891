package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/ping", h.ping)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/version/", h.getServerVersion)
		r.Get("/build", h.getBuildInfo)
		r.Get("/workflows", h.listWorkflows)
		r.Get("/runs", h.listRuns)
		r.Post("/sync/{workflow}", h.runWorkflow)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
