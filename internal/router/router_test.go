package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evyataryagoni/aqi2cigarette/internal/handler"
	"github.com/evyataryagoni/aqi2cigarette/internal/limiter"
	"github.com/evyataryagoni/aqi2cigarette/internal/logger"
	"github.com/evyataryagoni/aqi2cigarette/internal/metrics"
	"github.com/evyataryagoni/aqi2cigarette/internal/provider"
	"github.com/evyataryagoni/aqi2cigarette/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, allow bool) (http.Handler, *metrics.Metrics) {
	t.Helper()

	log := logger.NewNop()
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	svc := service.NewAQIService(provider.NewMockProvider(90), nil, m, log)

	r := SetupRouter(Dependencies{
		AQIHandler:     handler.NewAQIHandler(svc, log),
		LogsHandler:    handler.NewLogsHandler(""),
		RateLimiter:    limiter.NewMockLimiter(allow),
		Metrics:        m,
		Logger:         log,
		AllowedOrigins: []string{"https://example.com"},
	})
	return r, m
}

func TestRouter_SendLocation(t *testing.T) {
	r, m := newTestRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/send/location", strings.NewReader(`{"lat":23.96,"lon":86.8}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"noOfCigarette":"1.39"`)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/send/location", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.AQIResolutionsTotal.WithLabelValues("coordinates", "success")))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/send/location", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimited(t *testing.T) {
	r, m := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/send/location", strings.NewReader(`{"location":"jamtara"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"429"`)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitedTotal))
}

func TestRouter_CORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t, true)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/send/location", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSDisallowedOrigin(t *testing.T) {
	r, _ := newTestRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/send/location", strings.NewReader(`{"location":"x"}`))
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_LogsDownloadNotConfigured(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs/downloads", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_SwaggerDoc(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/send/location")
}
