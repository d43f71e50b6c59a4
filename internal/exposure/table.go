package exposure

import (
	"errors"
	"fmt"
	"math"

	"github.com/evyataryagoni/aqi2cigarette/internal/models"
)

var (
	// ErrInvalidAQI is returned for AQI values that are NaN, infinite or negative
	ErrInvalidAQI = errors.New("invalid AQI value")

	// ErrInvalidTable is returned by NewTable for unusable breakpoint tables
	ErrInvalidTable = errors.New("invalid breakpoint table")
)

// DefaultBreakpoints returns the US EPA PM2.5 breakpoint table
// (40 CFR Part 58 Appendix G, 2012 revision).
func DefaultBreakpoints() []models.Breakpoint {
	return []models.Breakpoint{
		{AQILow: 0, AQIHigh: 50, PM25Low: 0.0, PM25High: 12.0},
		{AQILow: 51, AQIHigh: 100, PM25Low: 12.1, PM25High: 35.4},
		{AQILow: 101, AQIHigh: 150, PM25Low: 35.5, PM25High: 55.4},
		{AQILow: 151, AQIHigh: 200, PM25Low: 55.5, PM25High: 150.4},
		{AQILow: 201, AQIHigh: 300, PM25Low: 150.5, PM25High: 250.4},
		{AQILow: 301, AQIHigh: 400, PM25Low: 250.5, PM25High: 350.4},
		{AQILow: 401, AQIHigh: 500, PM25Low: 350.5, PM25High: 500.4},
	}
}

// Table maps AQI values onto PM2.5 concentrations.
// A Table is immutable and safe for concurrent use.
type Table struct {
	bands []models.Breakpoint
}

// NewTable builds a Table from bands sorted by AQI.
// The first band must start at AQI 0, and both the AQI and the PM2.5 ranges
// must be non-decreasing from one band to the next so that the mapping is
// monotonic.
func NewTable(bands []models.Breakpoint) (*Table, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: no bands", ErrInvalidTable)
	}
	if bands[0].AQILow != 0 {
		return nil, fmt.Errorf("%w: first band starts at AQI %g, want 0", ErrInvalidTable, bands[0].AQILow)
	}

	for i, b := range bands {
		if !finite(b.AQILow, b.AQIHigh, b.PM25Low, b.PM25High) {
			return nil, fmt.Errorf("%w: band %d has non-finite bounds", ErrInvalidTable, i)
		}
		if b.AQILow >= b.AQIHigh {
			return nil, fmt.Errorf("%w: band %d AQI range %g-%g is empty", ErrInvalidTable, i, b.AQILow, b.AQIHigh)
		}
		if b.PM25Low < 0 || b.PM25Low > b.PM25High {
			return nil, fmt.Errorf("%w: band %d PM2.5 range %g-%g is invalid", ErrInvalidTable, i, b.PM25Low, b.PM25High)
		}
		if i == 0 {
			continue
		}
		prev := bands[i-1]
		if b.AQILow < prev.AQIHigh {
			return nil, fmt.Errorf("%w: band %d overlaps band %d", ErrInvalidTable, i, i-1)
		}
		if b.PM25Low < prev.PM25High {
			return nil, fmt.Errorf("%w: band %d PM2.5 decreases from band %d", ErrInvalidTable, i, i-1)
		}
	}

	return &Table{bands: append([]models.Breakpoint(nil), bands...)}, nil
}

// DefaultTable returns a Table over DefaultBreakpoints
func DefaultTable() *Table {
	t, err := NewTable(DefaultBreakpoints())
	if err != nil {
		panic(err)
	}
	return t
}

// Bands returns a copy of the table's bands
func (t *Table) Bands() []models.Breakpoint {
	return append([]models.Breakpoint(nil), t.bands...)
}

// PM25 returns the PM2.5 concentration (µg/m³) for an AQI value.
//
// Values inside a band are interpolated linearly within it. Values that fall
// between two bands (50.5 with the EPA table) are interpolated between the
// upper end of the lower band and the lower end of the upper one. Values
// above the last band follow the last band's slope and report
// extrapolated = true.
func (t *Table) PM25(aqi float64) (pm25 float64, extrapolated bool, err error) {
	if math.IsNaN(aqi) || math.IsInf(aqi, 0) || aqi < 0 {
		return 0, false, fmt.Errorf("%w: %v", ErrInvalidAQI, aqi)
	}

	for i, b := range t.bands {
		if aqi > b.AQIHigh {
			continue
		}
		if aqi >= b.AQILow {
			return lerp(aqi, b.AQILow, b.AQIHigh, b.PM25Low, b.PM25High), false, nil
		}
		prev := t.bands[i-1]
		return lerp(aqi, prev.AQIHigh, b.AQILow, prev.PM25High, b.PM25Low), false, nil
	}

	top := t.bands[len(t.bands)-1]
	return lerp(aqi, top.AQILow, top.AQIHigh, top.PM25Low, top.PM25High), true, nil
}

func lerp(x, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
