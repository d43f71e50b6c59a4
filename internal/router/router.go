package router

import (
	"net/http"

	_ "github.com/evyataryagoni/aqi2cigarette/docs" // Swagger docs
	"github.com/evyataryagoni/aqi2cigarette/internal/handler"
	"github.com/evyataryagoni/aqi2cigarette/internal/limiter"
	"github.com/evyataryagoni/aqi2cigarette/internal/logger"
	"github.com/evyataryagoni/aqi2cigarette/internal/metrics"
	custommiddleware "github.com/evyataryagoni/aqi2cigarette/internal/middleware"
	v1 "github.com/evyataryagoni/aqi2cigarette/internal/router/v1"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Dependencies is everything the router wires into its routes
type Dependencies struct {
	AQIHandler     *handler.AQIHandler
	LogsHandler    *handler.LogsHandler
	RateLimiter    limiter.Limiter
	Metrics        *metrics.Metrics // optional
	Logger         *logger.Logger
	AllowedOrigins []string
}

// SetupRouter creates the chi router with all middleware and routes.
// Middleware order: request ID, real IP, logging, panic recovery, CORS,
// rate limiting, metrics.
func SetupRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.LoggingMiddleware(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(newCORS(deps.AllowedOrigins).Handler)
	r.Use(custommiddleware.RateLimitMiddleware(deps.RateLimiter, deps.Metrics))
	r.Use(custommiddleware.MetricsMiddleware(deps.Metrics))

	r.Mount("/api/v1", v1.SetupRoutes(deps.AQIHandler))

	r.Get("/health", healthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/logs/downloads", deps.LogsHandler.Download)

	// UI at /swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}

// healthCheckHandler reports that the process is up
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
