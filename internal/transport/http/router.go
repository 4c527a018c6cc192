package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hostel/internal/platform/metrics"
	dErrors "hostel/pkg/domain-errors"
	"hostel/pkg/platform/httputil"
	"hostel/pkg/platform/middleware/auth"
	"hostel/pkg/platform/middleware/request"
	"hostel/pkg/platform/middleware/requesttime"
	"hostel/pkg/requestcontext"
)

// Registrar is implemented by every module handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether one backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Config carries what the router needs besides the module handlers.
type Config struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Tokens   auth.TokenValidator
	Health   map[string]HealthCheck
}

// NewRouter mounts /health and /metrics unauthenticated and every module
// behind the caller check. Handlers stay thin: they only decode, delegate and
// encode.
func NewRouter(cfg Config, modules ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(cfg.Logger))
	r.Use(request.Recovery(cfg.Logger))
	r.Use(observeLatency(cfg.Metrics))

	r.Get("/health", healthHandler(cfg.Logger, cfg.Health))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireCaller(cfg.Tokens, cfg.Logger))
		for _, m := range modules {
			m.Register(r)
		}
	})
	return r
}

// observeLatency labels requests by route pattern rather than raw path so
// room ids do not explode the label set.
func observeLatency(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(r.Method, route, start)
		})
	}
}

func healthHandler(logger *slog.Logger, checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok"}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed",
					"dependency", name,
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeTimeout, name+" is unavailable"))
				return
			}
			status[name] = "ok"
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	}
}
