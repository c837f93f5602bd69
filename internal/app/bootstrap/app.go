package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/portfolio-contact/internal/api/router"
	"github.com/wolfman30/portfolio-contact/internal/contact"
	appconfig "github.com/wolfman30/portfolio-contact/internal/config"
	"github.com/wolfman30/portfolio-contact/internal/observability/metrics"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

// App is the fully wired contact API.
type App struct {
	Handler http.Handler

	redis *redis.Client
}

// Close releases connections held by the app.
func (a *App) Close() error {
	if a == nil || a.redis == nil {
		return nil
	}
	return a.redis.Close()
}

// BuildApp wires config into a ready HTTP handler. Shared by the long-running
// server and the Lambda entrypoint.
func BuildApp(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, logger *logging.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	var (
		contactMetrics *metrics.ContactMetrics
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		contactMetrics = metrics.NewContactMetrics(reg)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	provider, err := BuildEmailProvider(ctx, cfg, loadAWS, logger)
	if err != nil {
		return nil, err
	}

	service := contact.NewService(provider, contact.ServiceConfig{
		Identity: contact.Identity{
			SiteName: cfg.SiteName,
			From:     cfg.Sender(),
			To:       cfg.ContactEmail,
		},
		DispatchTimeout: cfg.DispatchTimeout,
	}, contactMetrics, logger)

	redisClient := BuildRedisClient(ctx, cfg, logger, true)

	handler := router.New(&router.Config{
		Logger:             logger,
		ContactHandler:     contact.NewHandler(service, contact.DefaultOptions(), contactMetrics, logger),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        BuildRateLimiter(cfg, redisClient, logger),
		Metrics:            contactMetrics,
	})

	return &App{Handler: handler, redis: redisClient}, nil
}
