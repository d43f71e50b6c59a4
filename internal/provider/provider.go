package provider

import (
	"context"
	"errors"
	"fmt"
)

// Strategy names the kind of upstream lookup, used in logs and metrics
type Strategy string

const (
	StrategyCoordinates Strategy = "coordinates"
	StrategyCity        Strategy = "city"
)

// Provider fetches the current overall AQI from an air-quality service.
// Both lookups make exactly one upstream call and never retry.
type Provider interface {
	// AQIByCoordinates returns the overall AQI at a latitude/longitude
	AQIByCoordinates(ctx context.Context, lat, lon float64) (float64, error)

	// AQIByCity returns the overall AQI for a place name, geocoded by the provider
	AQIByCity(ctx context.Context, city string) (float64, error)
}

// ErrMissingAQI is returned when a response has no overall_aqi field
var ErrMissingAQI = errors.New("response has no overall_aqi")

// StatusError is returned for non-2xx upstream responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Body)
}
