package service

import (
	"context"
	"fmt"

	"github.com/evyataryagoni/aqi2cigarette/internal/exposure"
	"github.com/evyataryagoni/aqi2cigarette/internal/logger"
	"github.com/evyataryagoni/aqi2cigarette/internal/metrics"
	"github.com/evyataryagoni/aqi2cigarette/internal/models"
	"github.com/evyataryagoni/aqi2cigarette/internal/provider"
	"github.com/go-playground/validator/v10"
)

// AQIService resolves the AQI for a location and converts it to cigarettes.
//
// Responsibilities:
//   - Pick the lookup strategy from the location kind
//   - Make exactly one provider call per lookup
//   - Convert the AQI with the breakpoint table
//   - Collapse every failure into a *Error
//
// It holds no mutable state and is safe for concurrent use.
type AQIService struct {
	provider  provider.Provider
	table     *exposure.Table
	validator *validator.Validate
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewAQIService creates a new AQI service.
// table defaults to the EPA table; m and log may be nil.
func NewAQIService(p provider.Provider, table *exposure.Table, m *metrics.Metrics, log *logger.Logger) *AQIService {
	if table == nil {
		table = exposure.DefaultTable()
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &AQIService{
		provider:  p,
		table:     table,
		validator: validator.New(),
		metrics:   m,
		logger:    log.WithComponent("AQIService"),
	}
}

// Lookup resolves the AQI for loc and converts it.
// On failure the returned error is always a *Error.
func (s *AQIService) Lookup(ctx context.Context, loc models.Location) (*models.Exposure, error) {
	aqi, err := s.Resolve(ctx, loc)
	if err != nil {
		return nil, err
	}

	est, err := s.Convert(aqi)
	if err != nil {
		return nil, err
	}

	return &models.Exposure{
		AQI:          est.AQI,
		PM25:         est.PM25,
		Cigarettes:   est.Text,
		Extrapolated: est.Extrapolated,
	}, nil
}

// Resolve returns the current overall AQI for loc.
//
// Coordinates are looked up by lat/lon and place names by city; a nil
// location fails with KindMissingInput without calling the provider.
func (s *AQIService) Resolve(ctx context.Context, loc models.Location) (float64, error) {
	var (
		strategy provider.Strategy
		aqi      float64
		err      error
	)

	switch l := loc.(type) {
	case models.Coordinates:
		if verr := s.validator.Struct(l); verr != nil {
			s.logger.Warn().Float64("lat", l.Lat).Float64("lon", l.Lon).Msg("Coordinates out of range")
			s.countResolution(provider.StrategyCoordinates, "invalid_input")
			return 0, newError(KindInvalidInput, "coordinates out of range", verr)
		}
		strategy = provider.StrategyCoordinates
		s.logger.Debug().Float64("lat", l.Lat).Float64("lon", l.Lon).Msg("Resolving AQI by coordinates")
		aqi, err = s.provider.AQIByCoordinates(ctx, l.Lat, l.Lon)

	case models.PlaceName:
		if l.Name == "" {
			s.countResolution("none", "missing_input")
			return 0, newError(KindMissingInput, "location input missing", nil)
		}
		strategy = provider.StrategyCity
		s.logger.Debug().Str("location", l.Name).Msg("Resolving AQI by place name")
		aqi, err = s.provider.AQIByCity(ctx, l.Name)

	default:
		s.logger.Warn().Msg("Neither coordinates nor location supplied")
		s.countResolution("none", "missing_input")
		return 0, newError(KindMissingInput, "location input missing", nil)
	}

	if err != nil {
		s.logger.Error().Err(err).Str("strategy", string(strategy)).Msg("AQI lookup failed")
		s.countResolution(strategy, "upstream_error")
		return 0, newError(KindUpstreamUnavailable, "air quality provider unavailable", err)
	}

	s.logger.Info().Str("strategy", string(strategy)).Float64("aqi", aqi).Msg("Current AQI resolved")
	s.countResolution(strategy, "success")
	return aqi, nil
}

// Convert turns an AQI value into its cigarette equivalent
func (s *AQIService) Convert(aqi float64) (exposure.Estimate, error) {
	est, err := s.table.Convert(aqi)
	if err != nil {
		s.logger.Error().Err(err).Float64("aqi", aqi).Msg("AQI conversion failed")
		if s.metrics != nil {
			s.metrics.ConversionErrorsTotal.Inc()
		}
		return exposure.Estimate{}, newError(KindInvalidAQI, fmt.Sprintf("cannot convert AQI %v", aqi), err)
	}

	if est.Extrapolated {
		s.logger.Warn().Float64("aqi", aqi).Msg("AQI above highest breakpoint band, estimate extrapolated")
		if s.metrics != nil {
			s.metrics.ExtrapolationsTotal.Inc()
		}
	}

	s.logger.Info().
		Float64("aqi", aqi).
		Float64("pm25", est.PM25).
		Str("cigarettes", est.Text).
		Msg("No of cigarettes calculated")
	if s.metrics != nil {
		s.metrics.ExposureEstimates.Observe(est.Cigarettes)
	}
	return est, nil
}

func (s *AQIService) countResolution(strategy provider.Strategy, result string) {
	if s.metrics != nil {
		s.metrics.AQIResolutionsTotal.WithLabelValues(string(strategy), result).Inc()
	}
}
