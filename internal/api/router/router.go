package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/pratik-mahalle/cloudmgr/internal/api/docs"
	"github.com/pratik-mahalle/cloudmgr/internal/api/handlers"
	"github.com/pratik-mahalle/cloudmgr/internal/api/middleware"
	"github.com/pratik-mahalle/cloudmgr/internal/config"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Resource *handlers.ResourceHandler
	Metric   *handlers.MetricHandler
	Alert    *handlers.AlertHandler
	Log      *handlers.LogHandler
	User     *handlers.UserHandler
}

func New(cfg *config.Config, log *logger.Logger, limiter *middleware.RateLimiter, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(limiter))
	r.Use(metrics.Middleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)

	// The frontend calls the root paths; /api/v1 carries the same routes.
	api := func(r chi.Router) {
		r.Route("/resources", func(r chi.Router) {
			r.Get("/", h.Resource.List)
			r.Post("/", h.Resource.Create)
			r.Get("/{id}", h.Resource.Get)
			r.Put("/{id}", h.Resource.Update)
			r.Delete("/{id}", h.Resource.Delete)
			r.Get("/{id}/metrics", h.Metric.ForResource)
			r.Get("/{id}/logs", h.Log.ForResource)
		})
		r.Get("/alerts", h.Alert.List)
		r.Get("/logs", h.Log.List)
		r.Get("/users", h.User.List)
	}
	r.Group(api)
	r.Route("/api/v1", api)

	return r
}
