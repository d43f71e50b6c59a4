package config

import (
	"testing"
	"time"
)

// TestLoad_Defaults tests defaults when nothing is set
func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "NINJASAPIKEY", "UPSTREAM_TIMEOUT", "BREAKPOINT_SOURCE", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "3001" {
		t.Errorf("expected port 3001, got %s", cfg.Port)
	}
	if cfg.AQIBaseURL != "https://api.api-ninjas.com" {
		t.Errorf("unexpected base URL %s", cfg.AQIBaseURL)
	}
	if cfg.UpstreamTimeout != 8*time.Second {
		t.Errorf("expected 8s timeout, got %v", cfg.UpstreamTimeout)
	}
	if cfg.BreakpointSource != "builtin" {
		t.Errorf("expected builtin breakpoints, got %s", cfg.BreakpointSource)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard CORS origin, got %v", cfg.CORSAllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

// TestLoad_FromEnvironment tests overrides
func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("NINJASAPIKEY", "secret")
	t.Setenv("UPSTREAM_TIMEOUT", "1500ms")
	t.Setenv("BREAKPOINT_SOURCE", "CSV")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://aqi.example.com ,")
	t.Setenv("LOG_PRETTY", "false")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.AQIAPIKey != "secret" {
		t.Errorf("expected API key from env, got %q", cfg.AQIAPIKey)
	}
	if cfg.UpstreamTimeout != 1500*time.Millisecond {
		t.Errorf("expected 1.5s timeout, got %v", cfg.UpstreamTimeout)
	}
	if cfg.BreakpointSource != "csv" {
		t.Errorf("expected csv source, got %s", cfg.BreakpointSource)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://aqi.example.com" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogPretty {
		t.Error("expected pretty logging disabled")
	}
}

// TestGetEnvAsDuration tests both accepted duration formats
func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 5 * time.Second},
		{"10", 10 * time.Second},
		{"250ms", 250 * time.Millisecond},
		{"soon", 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := getEnvAsDuration("TEST_DURATION", 5*time.Second); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestConfig_Validate tests rejected configurations
func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:               "3001",
			CORSAllowedOrigins: []string{"*"},
			AQIBaseURL:         "https://api.api-ninjas.com",
			AQICoordinatesPath: "/v1/airquality",
			AQICityPath:        "/v1/airquality",
			UpstreamTimeout:    time.Second,
			RateLimitType:      "memory",
			RateLimit:          10,
			RateLimitWindow:    1,
			BreakpointSource:   "builtin",
			LogLevel:           "info",
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non numeric port", func(c *Config) { c.Port = "http" }},
		{"bad base URL", func(c *Config) { c.AQIBaseURL = "not a url" }},
		{"relative path", func(c *Config) { c.AQICityPath = "v1/airquality" }},
		{"zero timeout", func(c *Config) { c.UpstreamTimeout = 0 }},
		{"unknown limiter", func(c *Config) { c.RateLimitType = "etcd" }},
		{"unknown breakpoint source", func(c *Config) { c.BreakpointSource = "postgres" }},
		{"mysql without DSN", func(c *Config) { c.BreakpointSource = "mysql" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
