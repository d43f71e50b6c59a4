package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evyataryagoni/aqi2cigarette/internal/limiter"
	"github.com/evyataryagoni/aqi2cigarette/internal/metrics"
	"github.com/evyataryagoni/aqi2cigarette/internal/models"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRateLimitMiddleware_Allowed tests request allowed
func TestRateLimitMiddleware_Allowed(t *testing.T) {
	mockLimiter := limiter.NewMockLimiter(true)

	nextCalled := false
	handler := RateLimitMiddleware(mockLimiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/send/location", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !nextCalled {
		t.Error("expected next handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "success" {
		t.Errorf("expected body 'success', got '%s'", rec.Body.String())
	}
}

// TestRateLimitMiddleware_RateLimited tests request blocked with the error envelope
func TestRateLimitMiddleware_RateLimited(t *testing.T) {
	mockLimiter := limiter.NewMockLimiter(false)
	m := metrics.NewWithRegistry(prometheus.NewRegistry())

	nextCalled := false
	handler := RateLimitMiddleware(mockLimiter, m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/send/location", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if nextCalled {
		t.Error("expected next handler NOT to be called")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var errResp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(errResp.Errors) != 1 {
		t.Fatalf("expected one error entry, got %d", len(errResp.Errors))
	}
	got := errResp.Errors[0]
	if got.Title != "Too Many Requests" || got.Code != "429" {
		t.Errorf("unexpected error entry: %+v", got)
	}
	if got.Status != "Rate limit exceeded. Please try again later." {
		t.Errorf("unexpected status message: %s", got.Status)
	}

	if v := testutil.ToFloat64(m.RateLimitedTotal); v != 1 {
		t.Errorf("expected rate limited counter 1, got %v", v)
	}
}

// TestRateLimitMiddleware_ClientKey tests the key passed to the limiter
func TestRateLimitMiddleware_ClientKey(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		realIP     string
		expected   string
	}{
		{name: "IPv4 with port", remoteAddr: "192.168.1.1:12345", expected: "192.168.1.1"},
		{name: "IPv6 with port", remoteAddr: "[::1]:12345", expected: "::1"},
		{name: "no port", remoteAddr: "10.0.0.7", expected: "10.0.0.7"},
		{name: "X-Real-IP via RealIP", remoteAddr: "127.0.0.1:9999", realIP: "203.0.113.9", expected: "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLimiter := limiter.NewMockLimiter(true)
			handler := chimiddleware.RealIP(
				RateLimitMiddleware(mockLimiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})),
			)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if len(mockLimiter.AllowCalls) != 1 {
				t.Fatalf("expected 1 Allow call, got %d", len(mockLimiter.AllowCalls))
			}
			if mockLimiter.AllowCalls[0] != tt.expected {
				t.Errorf("expected client %s, got %s", tt.expected, mockLimiter.AllowCalls[0])
			}
		})
	}
}

// TestRateLimitMiddleware_MultipleRequests tests that every request consults the limiter
func TestRateLimitMiddleware_MultipleRequests(t *testing.T) {
	mockLimiter := limiter.NewMockLimiter(true)
	handler := RateLimitMiddleware(mockLimiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if len(mockLimiter.AllowCalls) != 5 {
		t.Errorf("expected 5 Allow calls, got %d", len(mockLimiter.AllowCalls))
	}
}

// TestRateLimitMiddleware_WithMemoryLimiter tests the real limiter end to end
func TestRateLimitMiddleware_WithMemoryLimiter(t *testing.T) {
	lim := limiter.NewMemoryLimiter(2)
	defer lim.Close()

	handler := RateLimitMiddleware(lim, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "192.168.1.50:1000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("expected first two requests to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected third request to be limited, got %d", codes[2])
	}
}
