package provider

import (
	"context"
	"sync"
)

// CoordinatesCall records one AQIByCoordinates call
type CoordinatesCall struct {
	Lat float64
	Lon float64
}

// MockProvider is a test double for the Provider interface.
// It returns a fixed AQI (or error) and records every call.
type MockProvider struct {
	mu sync.Mutex

	// Control behavior
	AQI   float64
	Error error

	// Track method calls for verification in tests
	CoordinatesCalls []CoordinatesCall
	CityCalls        []string
}

// NewMockProvider creates a mock provider that always reports aqi
func NewMockProvider(aqi float64) *MockProvider {
	return &MockProvider{AQI: aqi}
}

// NewFailingMockProvider creates a mock provider whose lookups all fail with err
func NewFailingMockProvider(err error) *MockProvider {
	return &MockProvider{Error: err}
}

// AQIByCoordinates implements the Provider interface
func (m *MockProvider) AQIByCoordinates(_ context.Context, lat, lon float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CoordinatesCalls = append(m.CoordinatesCalls, CoordinatesCall{Lat: lat, Lon: lon})
	if m.Error != nil {
		return 0, m.Error
	}
	return m.AQI, nil
}

// AQIByCity implements the Provider interface
func (m *MockProvider) AQIByCity(_ context.Context, city string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CityCalls = append(m.CityCalls, city)
	if m.Error != nil {
		return 0, m.Error
	}
	return m.AQI, nil
}

// Calls returns the total number of lookups made
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CoordinatesCalls) + len(m.CityCalls)
}
