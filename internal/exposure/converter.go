package exposure

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// CigarettePM25 is the daily PM2.5 concentration (µg/m³) that equals
// smoking one cigarette a day (Berkeley Earth estimate).
const CigarettePM25 = 22.0

// Estimate is the cigarette equivalent of one AQI reading
type Estimate struct {
	AQI          float64
	PM25         float64
	Cigarettes   float64 // rounded to two decimals
	Text         string  // Cigarettes as a fixed-point string, e.g. "1.39"
	Extrapolated bool
}

// Convert turns an AQI value into its cigarette equivalent.
// It fails with ErrInvalidAQI for NaN, infinite or negative input.
func (t *Table) Convert(aqi float64) (Estimate, error) {
	pm25, extrapolated, err := t.PM25(aqi)
	if err != nil {
		return Estimate{}, err
	}

	if math.IsInf(pm25, 0) {
		return Estimate{}, fmt.Errorf("%w: %v is out of range", ErrInvalidAQI, aqi)
	}

	rounded := roundHalfUp(pm25/CigarettePM25, 2)

	return Estimate{
		AQI:          aqi,
		PM25:         pm25,
		Cigarettes:   rounded.InexactFloat64(),
		Text:         rounded.StringFixed(2),
		Extrapolated: extrapolated,
	}, nil
}

// RoundHalfUp formats a non-negative x with exactly places decimals,
// rounding halves up. Rounding is done on the shortest decimal form of x so
// that 1.005 becomes "1.01" rather than "1.00".
func RoundHalfUp(x float64, places int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', places, 64)
	}
	return roundHalfUp(x, places).StringFixed(int32(places))
}

func roundHalfUp(x float64, places int) decimal.Decimal {
	return decimal.NewFromFloat(x).Round(int32(places))
}
