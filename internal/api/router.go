package api

import (
	"net/http"
	"store-locator-service/internal/api/handlers"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/ports"
	"store-locator-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(
	directory ports.StoreDirectory,
	pool *services.LocatorPool,
	site domain.SiteContent,
	contacts ports.ContactRepository,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	healthHandler := &handlers.HealthHandler{Directory: directory}
	storeHandler := &handlers.StoreHandler{Directory: directory}
	nearestHandler := &handlers.NearestHandler{Pool: pool}
	siteHandler := &handlers.SiteHandler{Content: site}
	contactHandler := &handlers.ContactHandler{Repo: contacts}

	r.Get("/health", healthHandler.Health)

	r.Route("/stores", func(r chi.Router) {
		r.Get("/", storeHandler.List)
		r.Get("/nearest", nearestHandler.Nearest)
		r.Get("/states", storeHandler.States)
		r.Get("/{id}", storeHandler.Get)
		r.Get("/{id}/directions", storeHandler.Directions)
		r.Get("/{id}/call", storeHandler.Call)
	})

	r.Get("/jobs", siteHandler.Jobs)
	r.Get("/about", siteHandler.About)
	r.Post("/contact", contactHandler.Submit)

	return r
}
