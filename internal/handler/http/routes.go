package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withRateLimit)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Get("/api/version", h.getServerVersion)

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/items/{kind}", func(r chi.Router) {
			r.Get("/", h.listItems)
			r.Post("/", h.createItem)
			r.Get("/{id}", h.getItem)
			r.Put("/{id}", h.replaceItem)
			r.Delete("/{id}", h.deleteItem)
		})

		r.Route("/api/vault", func(r chi.Router) {
			r.Post("/key", h.mintVaultKey)
			r.Post("/key/rotate", h.rotateVaultKey)
			r.Get("/snapshot", h.openSnapshot)
			r.Post("/snapshot", h.sealSnapshot)
			r.Post("/snapshot/import", h.importSnapshot)
		})
	})

	router.NotFound(RouteNotFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
