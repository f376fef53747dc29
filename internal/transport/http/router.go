// Package httptransport assembles the gateway's HTTP surface: the shared
// middleware stack, the operational endpoints, and the authenticated
// console API.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bibliodesk/internal/console/handler"
	"bibliodesk/internal/platform/health"
	"bibliodesk/internal/platform/metrics"
	"bibliodesk/pkg/platform/middleware/auth"
	"bibliodesk/pkg/platform/middleware/metadata"
	"bibliodesk/pkg/platform/middleware/request"
)

// RouterConfig carries everything the router composes. Metadata and Metrics
// are optional; the rest is required.
type RouterConfig struct {
	Console  *handler.Handler
	Health   *health.Handler
	Verifier auth.Verifier
	Metadata *metadata.Middleware
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// NewRouter wires middleware and routes. Everything under /console requires
// a staff token; the operational endpoints stay open for probes and
// scrapers.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	if cfg.Metadata != nil {
		r.Use(cfg.Metadata.Handler)
	}
	r.Use(request.Confirmation)

	var obs request.LatencyObserver
	if cfg.Metrics != nil {
		obs = cfg.Metrics
	}
	r.Use(request.AccessLog(cfg.Logger, obs))

	cfg.Health.Register(r)
	r.Get("/healthz", cfg.Health.HandleLiveness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/console", func(cr chi.Router) {
		cr.Use(auth.RequireStaff(cfg.Verifier, cfg.Logger))
		cfg.Console.Register(cr)
	})

	return r
}
