package store

import (
	"context"

	"github.com/evyataryagoni/aqi2cigarette/internal/models"
)

// MockStore is a test double for the Store interface
type MockStore struct {
	Bands []models.Breakpoint

	// Track method calls for verification in tests
	LoadCalls   int
	CloseCalled bool

	// Control behavior for error scenarios
	LoadError  error
	CloseError error
}

// NewMockStore creates a mock store holding bands
func NewMockStore(bands []models.Breakpoint) *MockStore {
	return &MockStore{Bands: bands}
}

// LoadBreakpoints implements the Store interface
func (m *MockStore) LoadBreakpoints(_ context.Context) ([]models.Breakpoint, error) {
	m.LoadCalls++
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if len(m.Bands) == 0 {
		return nil, ErrNoBreakpoints
	}
	return m.Bands, nil
}

// Close implements the Store interface
func (m *MockStore) Close() error {
	m.CloseCalled = true
	return m.CloseError
}
