package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/evyataryagoni/aqi2cigarette/internal/logger"
	"github.com/evyataryagoni/aqi2cigarette/internal/metrics"
)

// NinjasConfig configures a NinjasClient
type NinjasConfig struct {
	BaseURL         string        // e.g. https://api.api-ninjas.com
	CoordinatesPath string        // path of the lat/lon lookup
	CityPath        string        // path of the city lookup
	APIKey          string        // sent as X-Api-Key
	Timeout         time.Duration // bound on a whole upstream call
}

// NinjasClient implements Provider against the API Ninjas air quality API
type NinjasClient struct {
	cfg     NinjasConfig
	session *http.Client
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// airQualityResponse is the part of the API Ninjas payload we read.
// Per-pollutant blocks are ignored.
type airQualityResponse struct {
	OverallAQI *float64 `json:"overall_aqi"`
}

// NewNinjasClient creates a client. m and log may be nil.
func NewNinjasClient(cfg NinjasConfig, m *metrics.Metrics, log *logger.Logger) *NinjasClient {
	if log == nil {
		log = logger.NewDefault()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &NinjasClient{
		cfg:     cfg,
		session: &http.Client{Timeout: cfg.Timeout},
		metrics: m,
		logger:  log.WithComponent("NinjasClient"),
	}
}

// AQIByCoordinates implements Provider
func (c *NinjasClient) AQIByCoordinates(ctx context.Context, lat, lon float64) (float64, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return c.fetch(ctx, StrategyCoordinates, c.cfg.CoordinatesPath, q)
}

// AQIByCity implements Provider
func (c *NinjasClient) AQIByCity(ctx context.Context, city string) (float64, error) {
	q := url.Values{}
	q.Set("city", city)
	return c.fetch(ctx, StrategyCity, c.cfg.CityPath, q)
}

func (c *NinjasClient) fetch(ctx context.Context, strategy Strategy, path string, q url.Values) (aqi float64, err error) {
	defer c.observe(strategy)(&err)

	req, err := c.newRequest(ctx, c.cfg.BaseURL+path, q)
	if err != nil {
		return 0, err
	}

	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var decoded airQualityResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode air quality response: %w", err)
	}
	if decoded.OverallAQI == nil {
		return 0, ErrMissingAQI
	}

	return *decoded.OverallAQI, nil
}

func (c *NinjasClient) newRequest(ctx context.Context, endpoint string, q url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("X-Api-Key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *NinjasClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call air quality API: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// observe times one upstream call and records its outcome
func (c *NinjasClient) observe(strategy Strategy) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		outcome := "success"
		if errp != nil && *errp != nil {
			outcome = "error"
			c.logger.Debug().
				Err(*errp).
				Str("strategy", string(strategy)).
				Dur("duration_ms", dur).
				Msg("Air quality API call failed")
		} else {
			c.logger.Debug().
				Str("strategy", string(strategy)).
				Dur("duration_ms", dur).
				Msg("Air quality API call succeeded")
		}

		if c.metrics != nil {
			c.metrics.UpstreamRequestsTotal.WithLabelValues(string(strategy), outcome).Inc()
			c.metrics.UpstreamRequestDuration.WithLabelValues(string(strategy)).Observe(dur.Seconds())
		}
	}
}
