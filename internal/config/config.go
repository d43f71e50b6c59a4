package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port               string   `validate:"required,numeric"`
	CORSAllowedOrigins []string `validate:"min=1"`

	// Air quality API
	AQIAPIKey          string
	AQIBaseURL         string        `validate:"required,url"`
	AQICoordinatesPath string        `validate:"required,startswith=/"`
	AQICityPath        string        `validate:"required,startswith=/"`
	UpstreamTimeout    time.Duration `validate:"gt=0"`

	// Rate limiting
	RateLimitType   string `validate:"oneof=memory redis"`
	RateLimit       int    `validate:"gt=0"` // number of requests allowed
	RateLimitWindow int    `validate:"gt=0"` // time window in seconds

	// Breakpoint table source
	BreakpointSource string `validate:"oneof=builtin csv mysql redis"`
	BreakpointPath   string // CSV file, also used to seed Redis

	// MySQL configuration
	MySQLDSN string `validate:"required_if=BreakpointSource mysql"`

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int `validate:"gte=0"`

	// Logging
	LogLevel  string `validate:"oneof=trace debug info warn error fatal panic"`
	LogPretty bool
	LogFile   string
}

// Load reads configuration from environment variables with defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:               getEnv("PORT", "3001"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		AQIAPIKey:          getEnv("NINJASAPIKEY", ""),
		AQIBaseURL:         getEnv("AQI_BASE_URL", "https://api.api-ninjas.com"),
		AQICoordinatesPath: getEnv("AQI_COORDINATES_PATH", "/v1/airquality"),
		AQICityPath:        getEnv("AQI_CITY_PATH", "/v1/airquality"),
		UpstreamTimeout:    getEnvAsDuration("UPSTREAM_TIMEOUT", 8*time.Second),

		RateLimitType:   getEnv("RATE_LIMITER_TYPE", "memory"),
		RateLimit:       getEnvAsInt("RATE_LIMIT", 10),
		RateLimitWindow: getEnvAsInt("RATE_LIMIT_WINDOW", 1),

		BreakpointSource: strings.ToLower(getEnv("BREAKPOINT_SOURCE", "builtin")),
		BreakpointPath:   getEnv("BREAKPOINT_PATH", "./data/breakpoints.csv"),

		MySQLDSN: getEnv("MYSQL_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
		LogFile:   getEnv("LOG_FILE", ""),
	}
}

// Validate checks the configuration for values the server cannot start with
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer.
// Returns default if not set or invalid.
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as a bool ("true", "0", ...)
func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("8s", "1500ms") or plain seconds ("8")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
