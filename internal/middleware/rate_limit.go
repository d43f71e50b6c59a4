package middleware

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/evyataryagoni/aqi2cigarette/internal/limiter"
	"github.com/evyataryagoni/aqi2cigarette/internal/metrics"
	"github.com/evyataryagoni/aqi2cigarette/internal/models"
)

// RateLimitMiddleware enforces rate limiting per client IP (429 when exceeded).
// It expects chi's RealIP middleware to have already resolved proxy headers
// into r.RemoteAddr. m may be nil.
func RateLimitMiddleware(lim limiter.Limiter, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow(clientIP(r)) {
				if m != nil {
					m.RateLimitedTotal.Inc()
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(models.NewErrorResponse(
					http.StatusTooManyRequests,
					"Rate limit exceeded. Please try again later.",
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr when there is one
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
