package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/evyataryagoni/aqi2cigarette/internal/models"
)

// CSVStore implements Store over a CSV file read once at construction.
//
// CSV Format: aqi_low,aqi_high,pm25_low,pm25_high
// Example: 51,100,12.1,35.4
type CSVStore struct {
	bands []models.Breakpoint
}

// NewCSVStore reads the breakpoint table from filePath
func NewCSVStore(filePath string) (*CSVStore, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	bands, err := ParseBreakpointsCSV(file)
	if err != nil {
		return nil, err
	}

	return &CSVStore{bands: bands}, nil
}

// ParseBreakpointsCSV parses a breakpoint table with a header row.
// Unlike lookup data, a bad row fails the whole table.
func ParseBreakpointsCSV(r io.Reader) ([]models.Breakpoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	var bands []models.Breakpoint
	for i, record := range records {
		if i == 0 {
			continue // header
		}

		values := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", i+1, j+1, err)
			}
			values[j] = v
		}

		bands = append(bands, models.Breakpoint{
			AQILow:   values[0],
			AQIHigh:  values[1],
			PM25Low:  values[2],
			PM25High: values[3],
		})
	}

	if len(bands) == 0 {
		return nil, ErrNoBreakpoints
	}
	return bands, nil
}

// LoadBreakpoints implements Store
func (s *CSVStore) LoadBreakpoints(_ context.Context) ([]models.Breakpoint, error) {
	return append([]models.Breakpoint(nil), s.bands...), nil
}

// Close implements Store; the table is held in memory
func (s *CSVStore) Close() error {
	return nil
}
