package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterConfig holds the handlers and options of the HTTP surface
type RouterConfig struct {
	Dashboard      *DashboardHandler
	Proxy          *ProxyHandler
	Ready          func(ctx context.Context) error
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter builds the service router
func NewRouter(config RouterConfig, logger zerolog.Logger) http.Handler {
	logger = logger.With().Str("component", "http_router").Logger()

	origins := config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	if config.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(config.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if config.Ready != nil {
			if err := config.Ready(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("Redis unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	r.Handle("/metrics", promhttp.Handler())

	if config.Dashboard != nil {
		r.Route("/api/v1", config.Dashboard.RegisterRoutes)
	}
	if config.Proxy != nil {
		r.Route("/api", config.Proxy.RegisterRoutes)
	}

	return r
}

// requestLogger logs one line per request at debug level, warn for 5xx
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			event := logger.Debug()
			if ww.Status() >= http.StatusInternalServerError {
				event = logger.Warn()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Msg("handled request")
		})
	}
}
