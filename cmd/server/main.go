package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/evyataryagoni/aqi2cigarette/internal/config"
	"github.com/evyataryagoni/aqi2cigarette/internal/exposure"
	"github.com/evyataryagoni/aqi2cigarette/internal/handler"
	"github.com/evyataryagoni/aqi2cigarette/internal/limiter"
	"github.com/evyataryagoni/aqi2cigarette/internal/logger"
	"github.com/evyataryagoni/aqi2cigarette/internal/metrics"
	"github.com/evyataryagoni/aqi2cigarette/internal/provider"
	"github.com/evyataryagoni/aqi2cigarette/internal/router"
	"github.com/evyataryagoni/aqi2cigarette/internal/service"
	"github.com/evyataryagoni/aqi2cigarette/internal/store"
)

// @title           AQI2Cigarette API
// @version         1.0
// @description     Converts the current air quality at a location into the number of cigarettes smoked per day
// @termsOfService  http://swagger.io/terms/

// @contact.name   Evyatar Yagoni
// @contact.email  evyatar@example.com

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:3001
// @BasePath  /
func main() {
	appConfig := config.Load()
	appLogger := setupLogger(appConfig)

	if err := appConfig.Validate(); err != nil {
		appLogger.Fatal().Err(err).Msg("Invalid configuration")
	}

	metricsCollector := setupMetrics(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	table := setupBreakpointTable(ctx, appConfig, metricsCollector, appLogger)

	rateLimiter := setupRateLimiter(appConfig, appLogger)
	defer rateLimiter.Close()

	aqiProvider := provider.NewNinjasClient(provider.NinjasConfig{
		BaseURL:         appConfig.AQIBaseURL,
		CoordinatesPath: appConfig.AQICoordinatesPath,
		CityPath:        appConfig.AQICityPath,
		APIKey:          appConfig.AQIAPIKey,
		Timeout:         appConfig.UpstreamTimeout,
	}, metricsCollector, appLogger)

	aqiService := service.NewAQIService(aqiProvider, table, metricsCollector, appLogger)

	appRouter := router.SetupRouter(router.Dependencies{
		AQIHandler:     handler.NewAQIHandler(aqiService, appLogger),
		LogsHandler:    handler.NewLogsHandler(appLogger.OutputFile()),
		RateLimiter:    rateLimiter,
		Metrics:        metricsCollector,
		Logger:         appLogger,
		AllowedOrigins: appConfig.CORSAllowedOrigins,
	})

	startServer(ctx, appConfig, appRouter, appLogger)
}

// setupLogger initializes the structured logger
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:      appConfig.LogLevel,
		Pretty:     appConfig.LogPretty,
		OutputFile: appConfig.LogFile,
	})

	appLogger.Info().Msg("Starting AQI2Cigarette Server...")
	appLogger.Info().
		Str("port", appConfig.Port).
		Str("aqi_base_url", appConfig.AQIBaseURL).
		Dur("upstream_timeout", appConfig.UpstreamTimeout).
		Str("rate_limiter_type", appConfig.RateLimitType).
		Int("rate_limit", appConfig.RateLimit).
		Int("rate_limit_window", appConfig.RateLimitWindow).
		Str("breakpoint_source", appConfig.BreakpointSource).
		Str("log_file", appConfig.LogFile).
		Msg("Configuration loaded")

	if appConfig.AQIAPIKey == "" {
		appLogger.Warn().Msg("NINJASAPIKEY is not set, upstream calls will be rejected")
	}

	return appLogger
}

// setupBreakpointTable loads the AQI to PM2.5 table from the configured source.
// The store is only needed at startup and is closed before returning.
func setupBreakpointTable(ctx context.Context, appConfig *config.Config, m *metrics.Metrics, log *logger.Logger) *exposure.Table {
	var (
		source store.Store
		err    error
	)

	switch appConfig.BreakpointSource {
	case "builtin":
		// nil store means the built-in EPA table

	case "csv":
		source, err = store.NewCSVStore(appConfig.BreakpointPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize CSV breakpoint store")
		}

	case "mysql":
		source, err = store.NewMySQLStore(appConfig.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize MySQL breakpoint store")
		}

	case "redis":
		redisStore, err := store.NewRedisStore(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis breakpoint store")
		}
		seedRedisIfEmpty(ctx, redisStore, appConfig.BreakpointPath, log)
		source = redisStore

	default:
		log.Fatal().Str("source", appConfig.BreakpointSource).Msg("Unknown breakpoint source")
	}

	if source != nil {
		defer source.Close()
	}

	table, err := store.LoadTable(ctx, source)
	if err != nil {
		log.Fatal().Err(err).Str("source", appConfig.BreakpointSource).Msg("Failed to load breakpoint table")
	}

	bands := len(table.Bands())
	m.BreakpointBandsLoaded.Set(float64(bands))
	log.Info().Str("source", appConfig.BreakpointSource).Int("bands", bands).Msg("Breakpoint table loaded")

	return table
}

// seedRedisIfEmpty copies the CSV table into Redis on first start
func seedRedisIfEmpty(ctx context.Context, redisStore *store.RedisStore, csvPath string, log *logger.Logger) {
	isEmpty, err := redisStore.IsEmpty(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to check if Redis is empty")
		return
	}
	if !isEmpty {
		return
	}

	log.Info().Str("path", csvPath).Msg("Redis has no breakpoints, seeding from CSV")
	n, err := redisStore.LoadFromCSV(ctx, csvPath)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to seed breakpoints")
		return
	}
	log.Info().Int("bands", n).Msg("Breakpoints seeded")
}

// setupRateLimiter initializes the rate limiter.
// RATE_LIMIT requests per RATE_LIMIT_WINDOW seconds becomes a per-second rate.
func setupRateLimiter(appConfig *config.Config, log *logger.Logger) limiter.Limiter {
	effectiveRate := float64(appConfig.RateLimit) / float64(appConfig.RateLimitWindow)

	rateLimiter, err := limiter.NewLimiter(limiter.LimiterConfig{
		Type:              appConfig.RateLimitType,
		RequestsPerSecond: effectiveRate,
		RedisAddr:         appConfig.RedisAddr,
		RedisPassword:     appConfig.RedisPassword,
		RedisDB:           appConfig.RedisDB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize rate limiter")
	}

	log.Info().
		Str("type", appConfig.RateLimitType).
		Float64("requests_per_second", effectiveRate).
		Msg("Rate limiter initialized")

	return rateLimiter
}

// setupMetrics initializes the Prometheus metrics collector
func setupMetrics(log *logger.Logger) *metrics.Metrics {
	metricsCollector := metrics.New()
	log.Info().Msg("Metrics initialized")
	return metricsCollector
}

// startServer serves until ctx is cancelled, then drains in-flight requests
func startServer(ctx context.Context, appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           appRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	base := "http://localhost:" + appConfig.Port
	log.Info().
		Str("port", appConfig.Port).
		Str("api_endpoint", base+"/api/v1/send/location").
		Str("health_check", base+"/health").
		Str("metrics", base+"/metrics").
		Str("swagger", base+"/swagger/index.html").
		Msg("Server is running")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}
