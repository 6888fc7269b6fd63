package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/hulukipedia/gateway/internal/errors"
	"github.com/hulukipedia/gateway/internal/handlers"
	"github.com/hulukipedia/gateway/internal/middleware"
	"github.com/hulukipedia/gateway/internal/monitoring"
)

// Options toggles optional routes.
type Options struct {
	EnableSwagger bool
}

// SetupRoutes configures all routes for the application
func SetupRoutes(apiHandlers *handlers.APIHandlers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestCorrelationMiddleware)
	r.Use(middleware.CORSMiddleware)
	r.Use(monitoring.MetricsMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.HandleErrorCtx(r.Context(), w, errors.NewNotFoundError("Not Found"), http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errors.HandleErrorCtx(r.Context(), w, errors.NewNotFoundError("Method Not Allowed"), http.StatusMethodNotAllowed)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", apiHandlers.HealthHandler)
		r.Get("/providers", apiHandlers.ProvidersHandler)
		r.Post("/generate", apiHandlers.GenerateHandler)
		r.Post("/images", apiHandlers.ImagesHandler)
	})

	r.Handle("/metrics", monitoring.Handler())

	if opts.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("none"),
			httpSwagger.DomID("swagger-ui"),
		))
	}

	return r
}
