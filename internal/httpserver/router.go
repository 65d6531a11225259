package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"dentalgate/internal/handlers"
	"dentalgate/internal/metrics"
	"dentalgate/internal/middleware"
	"dentalgate/internal/ratelimit"
)

// Options carries the route-level knobs that differ between deployments.
type Options struct {
	AllowedHosts []string
	APISecret    string
	AuthDisabled bool
	Limiter      *ratelimit.Limiter
}

func SetupRouter(r *chi.Mux, baseLogger *zap.Logger, h *handlers.Handler, opts Options) {

	r.Use(metrics.Middleware)

	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(middleware.AllowedHosts(opts.AllowedHosts))

	r.Use(middleware.LoggingContext(baseLogger))
	r.Use(middleware.Recoverer())               // panic recovery
	r.Use(middleware.Timeout(60 * time.Second)) // above the 30s upstream timeout
	r.Use(middleware.MaxBodySize(64 << 20))     // above the 50MB file cap, handler owns 413

	r.Get("/", h.Index)

	// model-facing endpoints share the sliding-window rate limit
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.Limiter))
		r.Post("/ask", h.Ask)
		r.Post("/ask-with-file", h.AskWithFile)
	})

	// read-only introspection
	r.Get("/actions", h.Actions)
	r.Get("/actions/categories", h.ActionCategories)
	r.Get("/supported-files", h.SupportedFiles)
	r.Get("/cache/stats", h.CacheStats)
	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(opts.APISecret, opts.AuthDisabled))
		r.Delete("/cache/clear", h.CacheClear)
	})

	r.Handle("/metrics", metrics.Handler())

	// liveness probe, no middleware side effects worth logging
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}
