package store

import (
	"context"
	"fmt"

	"github.com/evyataryagoni/aqi2cigarette/internal/exposure"
)

// LoadTable reads the breakpoint bands from s and validates them into a Table.
// A nil store yields the built-in EPA table.
func LoadTable(ctx context.Context, s Store) (*exposure.Table, error) {
	if s == nil {
		return exposure.DefaultTable(), nil
	}

	bands, err := s.LoadBreakpoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("load breakpoints: %w", err)
	}

	table, err := exposure.NewTable(bands)
	if err != nil {
		return nil, fmt.Errorf("build breakpoint table: %w", err)
	}
	return table, nil
}
