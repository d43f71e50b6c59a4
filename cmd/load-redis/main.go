package main

import (
	"context"
	"time"

	"github.com/evyataryagoni/aqi2cigarette/internal/config"
	"github.com/evyataryagoni/aqi2cigarette/internal/logger"
	"github.com/evyataryagoni/aqi2cigarette/internal/store"
)

// This tool (re)loads the AQI breakpoint table from CSV into Redis.
// Usage: go run ./cmd/load-redis
func main() {
	appConfig := config.Load()
	log := logger.New(logger.Config{Level: appConfig.LogLevel, Pretty: true}).WithComponent("load-redis")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Info().Str("addr", appConfig.RedisAddr).Msg("Connecting to Redis")
	redisStore, err := store.NewRedisStore(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisStore.Close()

	log.Info().Str("path", appConfig.BreakpointPath).Msg("Loading breakpoints")
	n, err := redisStore.LoadFromCSV(ctx, appConfig.BreakpointPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load CSV data")
	}

	log.Info().
		Int("bands", n).
		Str("key", store.BreakpointsKey).
		Msg("Breakpoints loaded, start the server with BREAKPOINT_SOURCE=redis")
}
