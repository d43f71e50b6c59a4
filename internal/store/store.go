package store

import (
	"context"
	"errors"

	"github.com/evyataryagoni/aqi2cigarette/internal/models"
)

// ErrNoBreakpoints is returned when a backend holds no breakpoint bands
var ErrNoBreakpoints = errors.New("no breakpoint bands found")

// Store is a source of the AQI to PM2.5 breakpoint table.
// The table is read once at startup (CSV, MySQL or Redis) and never written
// by the server.
type Store interface {
	// LoadBreakpoints returns the bands ordered by AQI
	LoadBreakpoints(ctx context.Context) ([]models.Breakpoint, error)

	// Close cleans up resources (database connections, etc.)
	Close() error
}
