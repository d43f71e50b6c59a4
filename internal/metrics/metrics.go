package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Upstream air quality API
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	// Application Metrics
	AQIResolutionsTotal   *prometheus.CounterVec
	ExposureEstimates     prometheus.Histogram
	ConversionErrorsTotal prometheus.Counter
	ExtrapolationsTotal   prometheus.Counter
	BreakpointBandsLoaded prometheus.Gauge
	RateLimitedTotal      prometheus.Counter
}

// New creates all metrics and registers them with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all metrics and registers them with reg.
// Tests pass a fresh prometheus.NewRegistry() so they never collide.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "endpoint"},
		),

		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "endpoint", "status"},
		),

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aqi_upstream_requests_total",
				Help: "Total number of calls to the air quality API",
			},
			[]string{"strategy", "outcome"},
		),

		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aqi_upstream_request_duration_seconds",
				Help:    "Air quality API latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),

		AQIResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aqi_resolutions_total",
				Help: "Total number of AQI resolutions by strategy and result",
			},
			[]string{"strategy", "result"},
		),

		ExposureEstimates: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "exposure_cigarettes_per_day",
				Help:    "Distribution of computed cigarette equivalents",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40},
			},
		),

		ConversionErrorsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "exposure_conversion_errors_total",
				Help: "Total number of AQI values that could not be converted",
			},
		),

		ExtrapolationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "exposure_extrapolations_total",
				Help: "Total number of conversions above the highest breakpoint band",
			},
		),

		BreakpointBandsLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "breakpoint_bands_loaded",
				Help: "Number of bands in the active AQI to PM2.5 table",
			},
		),

		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "http_rate_limited_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),
	}
}
