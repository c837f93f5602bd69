package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/portfolio-contact/internal/contact"
	httpmiddleware "github.com/wolfman30/portfolio-contact/internal/http/middleware"
	"github.com/wolfman30/portfolio-contact/internal/observability/metrics"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ContactHandler     *contact.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Optional. Nil disables rate limiting on submissions.
	RateLimiter httpmiddleware.Limiter
	Metrics     *metrics.ContactMetrics
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(httpmiddleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Routes: map[string]string{
				"/api/contact":         http.MethodPost,
				"/api/contact/options": http.MethodGet,
			},
		}))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/contact", func(r chi.Router) {
		r.Group(func(submit chi.Router) {
			if cfg.RateLimiter != nil {
				submit.Use(httpmiddleware.RateLimit(cfg.RateLimiter, cfg.Metrics, cfg.Logger))
			}
			submit.Post("/", cfg.ContactHandler.Submit)
		})
		r.Get("/options", cfg.ContactHandler.GetOptions)
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
