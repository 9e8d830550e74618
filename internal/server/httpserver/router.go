package httpserver

import (
	"net/http"

	"github.com/yndnr/pairlink-go/internal/core/service"
	"github.com/yndnr/pairlink-go/internal/server/httpserver/handler"
	"github.com/yndnr/pairlink-go/internal/telemetry/logger"
	"github.com/yndnr/pairlink-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Manager handles session lifecycle operations.
	Manager *service.Manager

	// Metrics records request and session metrics, and serves /metrics.
	// Nil disables both.
	Metrics *metric.Registry

	// Logger for request logging.
	Logger logger.Logger

	// RateLimit is the per-client request rate (requests/second).
	// Zero disables rate limiting.
	RateLimit float64

	// RateBurst is the per-client burst allowance.
	RateBurst int

	// CORSOrigins lists allowed cross-origin origins. Empty disables
	// CORS handling.
	CORSOrigins []string
}

// NewRouter creates and configures the HTTP router with all routes and
// middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := handler.New(cfg.Manager, log)

	// One limiter table for the whole API: a client's budget covers all
	// session routes together, matching the documented per-client rate.
	limit := RateLimit(cfg.RateLimit, cfg.RateBurst)

	// Order per route: Recover -> RequestID -> AccessLog -> Metrics ->
	// [CORS -> RateLimit ->] handler.
	base := func(route string, extra ...Middleware) http.Handler {
		middlewares := []Middleware{
			Recover(log),
			RequestID(),
			AccessLog(log),
			Metrics(cfg.Metrics, route),
		}
		middlewares = append(middlewares, extra...)
		return Chain(h, middlewares...)
	}
	business := func(route string) http.Handler {
		return base(route,
			CORS(cfg.CORSOrigins),
			limit,
		)
	}

	mux := http.NewServeMux()

	// Health endpoints bypass CORS and rate limiting so probes never
	// get throttled.
	mux.Handle("GET /health", base("/health"))
	mux.Handle("GET /ready", base("/ready"))

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(),
			Recover(log),
			RequestID(),
		))
	}

	// Session endpoints.
	mux.Handle("POST /sessions/scan", business("/sessions/scan"))
	mux.Handle("POST /sessions/pairing", business("/sessions/pairing"))
	mux.Handle("GET /sessions", business("/sessions"))
	mux.Handle("GET /sessions/{id}", business("/sessions/{id}"))
	mux.Handle("POST /sessions/{id}/confirm", business("/sessions/{id}/confirm"))
	mux.Handle("DELETE /sessions/{id}", business("/sessions/{id}"))

	return mux
}
